// Package analyze produces verdicts on claims and the overall assessment.
package analyze

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
)

const analyzeSystemPrompt = "You are a careful fact-checker. Judge claims strictly against the " +
	"provided evidence. Respond only with JSON."

const analyzePromptTemplate = `Evaluate this claim against the gathered evidence.

Claim: %s

Original post (for context):
%s

Evidence:
%s

Respond with a JSON object:
{
  "label": "True" | "PartiallyTrue" | "False" | "Unverifiable",
  "confidence": "High" | "Medium" | "Low",
  "explanation": "2-3 sentences justifying the label",
  "evidenceSnippets": ["short quotes from the evidence that support the verdict"],
  "context": "any nuance or missing context the reader should know"
}
Use "Unverifiable" when the evidence neither confirms nor refutes the claim.`

// Analyzer produces a verdict for one claim from gathered evidence
type Analyzer struct {
	provider llm.Provider
	log      *zap.SugaredLogger
}

// NewAnalyzer creates a new claim analyzer
func NewAnalyzer(provider llm.Provider, log *zap.SugaredLogger) *Analyzer {
	return &Analyzer{provider: provider, log: log}
}

// Analyze judges one claim against the evidence blob. Malformed model output
// never escapes as an error; it degrades to the fixed fallback verdict.
func (a *Analyzer) Analyze(ctx context.Context, claimText, postText, evidenceBlob string) (model.Verdict, error) {
	raw, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      analyzeSystemPrompt,
		Prompt:      fmt.Sprintf(analyzePromptTemplate, claimText, postText, evidenceBlob),
		Temperature: 0.2,
	})
	if err != nil {
		return model.Verdict{}, fmt.Errorf("claim analysis: %w", err)
	}

	var verdict model.Verdict
	if err := extract.DecodeObject(raw, &verdict); err != nil {
		a.log.Warnw("analysis output unparseable, using fallback verdict",
			"claim", claimText, "error", err)
		return fallbackVerdict(err), nil
	}

	if !model.ValidLabel(verdict.Label) {
		a.log.Warnw("analysis returned unknown label, using fallback verdict",
			"claim", claimText, "label", verdict.Label)
		return fallbackVerdict(fmt.Errorf("unknown label %q", verdict.Label)), nil
	}

	if verdict.Confidence == "" {
		verdict.Confidence = model.ConfidenceLow
	}
	if verdict.EvidenceSnippets == nil {
		verdict.EvidenceSnippets = []string{}
	}

	return verdict, nil
}

// fallbackVerdict is the fixed verdict substituted when analysis output
// cannot be parsed
func fallbackVerdict(cause error) model.Verdict {
	return model.Verdict{
		Label:            model.LabelUnverifiable,
		Confidence:       model.ConfidenceLow,
		Explanation:      "The analysis of this claim failed, so no verdict could be determined.",
		EvidenceSnippets: []string{},
		Context:          fmt.Sprintf("Analysis response could not be parsed: %v", cause),
	}
}
