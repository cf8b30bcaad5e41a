package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

const synthesizePromptTemplate = `Write a short overall assessment (2-4 sentences) of this post
based on the per-claim verdicts below. State plainly how accurate the post is and mention the
most important caveat, if any. Write for a general reader; do not use JSON.

Post:
%s

Verdicts:
%s`

// Synthesizer combines per-claim verdicts into one overall assessment
type Synthesizer struct {
	provider llm.Provider
}

// NewSynthesizer creates a new assessment synthesizer
func NewSynthesizer(provider llm.Provider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Synthesize produces the overall assessment text. The output is free text
// and is accepted as-is; no structural validation is applied.
func (s *Synthesizer) Synthesize(ctx context.Context, postText string, results []model.ClaimResult) (string, error) {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %q: %s (%s confidence): %s\n",
			i+1, r.Claim, r.Verdict.Label, r.Verdict.Confidence, r.Verdict.Explanation)
	}

	assessment, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      fmt.Sprintf(synthesizePromptTemplate, postText, b.String()),
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("synthesize assessment: %w", err)
	}

	return assessment, nil
}
