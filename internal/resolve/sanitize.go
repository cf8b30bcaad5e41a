package resolve

import (
	"html"
	"strings"
)

// minCandidateLength rejects fragments too short to be a real post
const minCandidateLength = 20

// boilerplateMarkers are substrings that identify error pages and interstitials
// rather than post content. Matching is case-insensitive.
var boilerplateMarkers = []string{
	"javascript is disabled",
	"javascript is not available",
	"sign up now",
	"sign up to get your own",
	"log in to twitter",
	"this account is private",
	"account suspended",
	"this account doesn't exist",
	"page not found",
	"404",
	"something went wrong",
	"enable javascript",
	"cookies are required",
}

// Sanitizer decides whether an extracted candidate string is usable post text
// and normalizes it before use. The matching rules are heuristics over
// free-text HTML and model output; keep them here, out of orchestration code.
type Sanitizer struct {
	minLength int
	markers   []string
}

// NewSanitizer creates a sanitizer with the default rules
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		minLength: minCandidateLength,
		markers:   boilerplateMarkers,
	}
}

// Clean unescapes HTML entities and trims whitespace
func (s *Sanitizer) Clean(candidate string) string {
	return strings.TrimSpace(html.UnescapeString(candidate))
}

// Usable reports whether a cleaned candidate looks like actual post text.
// Too-short fragments and known boilerplate are rejected.
func (s *Sanitizer) Usable(candidate string) bool {
	if len(candidate) < s.minLength {
		return false
	}

	lower := strings.ToLower(candidate)
	for _, marker := range s.markers {
		if strings.Contains(lower, marker) {
			return false
		}
	}

	return true
}
