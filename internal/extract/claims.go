// Package extract turns raw post text into structured claims and search queries.
package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

const claimsSystemPrompt = "You extract verifiable factual claims from social media posts. " +
	"Respond only with JSON."

const claimsPromptTemplate = `Extract the factual claims from this post. A factual claim is a
statement that can be independently verified: events, statistics, attributions, dates, scientific
or historical facts. Exclude opinions, predictions, jokes, and subjective statements.

Post:
%s

Respond with a JSON array. Each element: {"claimText": "...", "type": "...", "specificity": "..."}.
Type is one of: event, statistic, attribution, scientific, historical, other.
Specificity is one of: specific, general.
If there are no verifiable factual claims, respond with [].`

// ClaimExtractor extracts claims from post text via the LLM provider
type ClaimExtractor struct {
	provider llm.Provider
	log      *zap.SugaredLogger
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, log *zap.SugaredLogger) *ClaimExtractor {
	return &ClaimExtractor{provider: provider, log: log}
}

// Extract extracts zero or more claims from post text, in model output order.
// Malformed model output degrades to an empty slice, never an error; the only
// error path is the completion call itself failing.
func (e *ClaimExtractor) Extract(ctx context.Context, postText string) ([]model.Claim, error) {
	raw, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      claimsSystemPrompt,
		Prompt:      fmt.Sprintf(claimsPromptTemplate, postText),
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	var claims []model.Claim
	if err := DecodeArray(raw, &claims); err != nil {
		e.log.Warnw("claim extraction output unparseable, treating as no claims", "error", err)
		return []model.Claim{}, nil
	}

	// Drop entries with empty text rather than carrying them through the pipeline
	filtered := claims[:0]
	for _, c := range claims {
		if c.Text != "" {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}
