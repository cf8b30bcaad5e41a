// Package resolve derives plain post text from text, image, or URL input,
// trying progressively weaker strategies.
package resolve

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/search"
)

// Stage identifies which resolution strategy failed
type Stage string

const (
	StageInput Stage = "input"
	StageImage Stage = "image"
	StageURL   Stage = "url"
)

// Error is a typed resolution failure. Stage and Message are for operator
// diagnosis; callers surface only a generic client message.
type Error struct {
	Stage   Stage
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolve %s: %s", e.Stage, e.Message)
}

// notFoundSentinel is what the extraction prompts instruct the model to
// return when no post text is present
const notFoundSentinel = "NOT_FOUND"

const imagePrompt = "Extract the text of the social media post shown in this image. " +
	"Respond with only the post text, nothing else. " +
	"If no post text is visible, respond with exactly " + notFoundSentinel + "."

const snippetPromptTemplate = `These are web search result snippets for the social media post at
%s. If any snippet contains the text of the post itself, respond with only that post text.
Otherwise respond with exactly ` + notFoundSentinel + `.

Snippets:
%s`

// Input is the raw request input, at most one of which is effective
type Input struct {
	Text        string
	ImageBase64 string
	ImageFormat string
	PostURL     string
}

// Resolver produces plain post text from whichever input form was supplied
type Resolver struct {
	provider    llm.Provider
	mirrors     *MirrorFetcher
	mirrorHosts []string
	searcher    search.Searcher
	sanitizer   *Sanitizer
	log         *zap.SugaredLogger
}

// NewResolver creates a new text acquisition resolver
func NewResolver(provider llm.Provider, mirrors *MirrorFetcher, mirrorHosts []string, searcher search.Searcher, log *zap.SugaredLogger) *Resolver {
	return &Resolver{
		provider:    provider,
		mirrors:     mirrors,
		mirrorHosts: mirrorHosts,
		searcher:    searcher,
		sanitizer:   NewSanitizer(),
		log:         log,
	}
}

// Resolve returns the plain text of the post. Strategies are tried in
// priority order: direct text, image extraction, URL resolution. Failures
// are *Error values naming the stage that gave up.
func (r *Resolver) Resolve(ctx context.Context, in Input) (string, error) {
	if text := strings.TrimSpace(in.Text); text != "" {
		return text, nil
	}

	if in.ImageBase64 != "" {
		return r.resolveImage(ctx, in.ImageBase64, in.ImageFormat)
	}

	if in.PostURL != "" {
		return r.resolveURL(ctx, in.PostURL)
	}

	return "", &Error{Stage: StageInput, Message: "no text, image, or post URL was provided"}
}

// resolveImage runs a vision extraction over the screenshot. There is no
// further fallback: an unreadable image fails the request.
func (r *Resolver) resolveImage(ctx context.Context, payload, declaredFormat string) (string, error) {
	data, format, nerr := NormalizeImage(payload, declaredFormat)
	if nerr != nil {
		return "", nerr
	}

	text, err := r.provider.ExtractImageText(ctx, llm.ImageRequest{
		Prompt:      imagePrompt,
		ImageBase64: data,
		Format:      format,
	})
	if err != nil {
		return "", &Error{Stage: StageImage, Message: fmt.Sprintf("vision extraction failed: %v", err)}
	}

	text = strings.TrimSpace(text)
	if text == "" || strings.Contains(strings.ToUpper(text), notFoundSentinel) {
		return "", &Error{Stage: StageImage, Message: "no post text could be read from the image"}
	}

	return text, nil
}

// resolveURL tries mirror meta descriptions, then search snippets, then an
// LLM pass over the snippets. Every candidate goes through the sanitizer;
// rejected candidates fall through to the next strategy.
func (r *Resolver) resolveURL(ctx context.Context, postURL string) (string, error) {
	platformHost := hostOf(postURL)

	for _, mirror := range r.mirrorHosts {
		mirrorURL, err := MirrorURL(postURL, mirror)
		if err != nil {
			return "", &Error{Stage: StageURL, Message: err.Error()}
		}

		desc, err := r.mirrors.FetchDescription(ctx, mirrorURL)
		if err != nil {
			r.log.Debugw("mirror fetch failed", "mirror", mirror, "error", err)
			continue
		}

		if text, ok := r.candidate(desc); ok {
			return text, nil
		}
	}

	results := r.searcher.Search(ctx, postURL, 5)

	// Prefer snippets from the post's own platform
	for _, res := range results {
		if hostOf(res.URL) == platformHost {
			if text, ok := r.candidate(res.Description); ok {
				return text, nil
			}
		}
	}
	for _, res := range results {
		if len(res.Description) > 30 {
			if text, ok := r.candidate(res.Description); ok {
				return text, nil
			}
		}
	}

	if len(results) > 0 {
		if text, ok := r.snippetExtraction(ctx, postURL, results); ok {
			return text, nil
		}
	}

	return "", &Error{Stage: StageURL, Message: "unable to extract tweet content; please enter the post text manually"}
}

// snippetExtraction hands all snippets to the model as a last resort
func (r *Resolver) snippetExtraction(ctx context.Context, postURL string, results []search.Result) (string, bool) {
	var b strings.Builder
	for i, res := range results {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, res.URL, res.Description)
	}

	raw, err := r.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      fmt.Sprintf(snippetPromptTemplate, postURL, b.String()),
		Temperature: 0,
		MaxTokens:   300,
	})
	if err != nil {
		r.log.Debugw("snippet extraction failed", "error", err)
		return "", false
	}

	if strings.Contains(strings.ToUpper(raw), notFoundSentinel) {
		return "", false
	}

	return r.candidate(raw)
}

// candidate cleans an extracted string and reports whether it is usable
func (r *Resolver) candidate(raw string) (string, bool) {
	text := r.sanitizer.Clean(raw)
	if !r.sanitizer.Usable(text) {
		return "", false
	}
	return text, true
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
