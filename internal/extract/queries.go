package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

const queriesPromptTemplate = `Generate 2-3 web search queries to find evidence for or against
this claim. Queries should target authoritative sources and cover different angles.

Claim: %s

Original post (for context):
%s

Respond with a JSON array. Each element: {"query": "...", "rationale": "..."}.`

// QueryDeriver derives search queries for a claim via the LLM provider
type QueryDeriver struct {
	provider llm.Provider
	log      *zap.SugaredLogger
}

// NewQueryDeriver creates a new query deriver
func NewQueryDeriver(provider llm.Provider, log *zap.SugaredLogger) *QueryDeriver {
	return &QueryDeriver{provider: provider, log: log}
}

// Derive produces 2-3 search queries for the claim. Malformed model output
// degrades to zero queries rather than an error.
func (d *QueryDeriver) Derive(ctx context.Context, claimText, postText string) ([]model.SearchQuery, error) {
	raw, err := d.provider.Complete(ctx, llm.CompletionRequest{
		System:      "You craft precise web search queries. Respond only with JSON.",
		Prompt:      fmt.Sprintf(queriesPromptTemplate, claimText, postText),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("query derivation: %w", err)
	}

	var queries []model.SearchQuery
	if err := DecodeArray(raw, &queries); err != nil {
		d.log.Warnw("query derivation output unparseable, using zero queries", "error", err)
		return nil, nil
	}

	filtered := queries[:0]
	for _, q := range queries {
		if q.Query != "" {
			filtered = append(filtered, q)
		}
	}

	// Keep the bound small even if the model over-produces
	if len(filtered) > 3 {
		filtered = filtered[:3]
	}

	return filtered, nil
}
