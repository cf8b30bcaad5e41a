package evidence

import (
	"regexp"
	"strings"
)

// MaxSources bounds the number of source URLs attributed to one claim
const MaxSources = 5

var urlPattern = regexp.MustCompile(`https?://[^\s\)]+`)

// SourceURLs extracts up to MaxSources URL-looking tokens from an evidence
// blob, in the order they appear. No deduplication is applied; repeated
// sources across queries stay repeated.
func SourceURLs(blob string) []string {
	matches := urlPattern.FindAllString(blob, -1)

	sources := make([]string, 0, MaxSources)
	for _, m := range matches {
		if len(sources) >= MaxSources {
			break
		}
		sources = append(sources, strings.TrimRight(m, ".,;:!?"))
	}

	return sources
}
