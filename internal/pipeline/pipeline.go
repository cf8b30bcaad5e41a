// Package pipeline orchestrates the fact-check run for one request:
// claim extraction, per-claim evidence gathering and analysis, synthesis,
// persistence, and notification.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/analyze"
	"github.com/claimlens/claimlens/internal/evidence"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/notify"
	"github.com/claimlens/claimlens/internal/store"
)

// Pipeline runs the asynchronous fact-check for accepted requests
type Pipeline struct {
	claims      *extract.ClaimExtractor
	gatherer    *evidence.Gatherer
	analyzer    *analyze.Analyzer
	synthesizer *analyze.Synthesizer
	store       store.Store
	notifier    notify.Notifier
	runner      *Runner
	baseURL     string
	log         *zap.SugaredLogger
}

// NewPipeline creates a new pipeline with the given collaborators
func NewPipeline(claims *extract.ClaimExtractor, gatherer *evidence.Gatherer, analyzer *analyze.Analyzer,
	synthesizer *analyze.Synthesizer, st store.Store, notifier notify.Notifier,
	runner *Runner, baseURL string, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		claims:      claims,
		gatherer:    gatherer,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		store:       st,
		notifier:    notifier,
		runner:      runner,
		baseURL:     baseURL,
		log:         log,
	}
}

// Request is an accepted fact-check request with already-resolved text
type Request struct {
	Text      string
	SourceURL string
}

// Accepted is the synchronous acceptance response
type Accepted struct {
	RequestID string
	ResultURL string
}

// Submit persists the initial processing record and starts the remaining
// pipeline in the background. It returns before any pipeline work runs.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Accepted, error) {
	record := &model.FactCheckResult{
		RequestID:    uuid.New().String(),
		Status:       model.StatusProcessing,
		TweetText:    req.Text,
		TweetURL:     req.SourceURL,
		ClaimResults: []model.ClaimResult{},
		CheckedAt:    time.Now().UTC(),
	}

	if err := p.store.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("persist initial record: %w", err)
	}

	p.runner.Go("factcheck:"+record.RequestID, func(ctx context.Context) {
		p.run(ctx, record)
	})

	return &Accepted{
		RequestID: record.RequestID,
		ResultURL: p.resultURL(record.RequestID),
	}, nil
}

// run is the single error boundary around the pipeline. Anything the
// component-level fallbacks did not absorb ends the request in the
// terminal error state.
func (p *Pipeline) run(ctx context.Context, record *model.FactCheckResult) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pipeline panic: %v", r)
			}
		}()
		return p.process(ctx, record)
	}()

	if err != nil {
		p.fail(ctx, record, err)
	}
}

func (p *Pipeline) process(ctx context.Context, record *model.FactCheckResult) error {
	log := p.log.With("requestID", record.RequestID)

	claims, err := p.claims.Extract(ctx, record.TweetText)
	if err != nil {
		return err
	}
	log.Infow("claims extracted", "count", len(claims))

	if len(claims) == 0 {
		record.Status = model.StatusComplete
		record.OverallAssessment = model.NoClaimsAssessment
		record.CheckedAt = time.Now().UTC()
		if err := p.store.Put(ctx, record); err != nil {
			return err
		}

		p.notifier.Notify(ctx, notify.Message{
			Title:    "Fact-check complete",
			Body:     string(model.LabelUnverifiable) + ": no verifiable factual claims found",
			ClickURL: p.resultURL(record.RequestID),
			Severity: notify.SeverityWarning,
		})
		return nil
	}

	// Claims run sequentially, in extraction order. Evidence gathering for
	// one claim is already concurrent internally.
	results := make([]model.ClaimResult, 0, len(claims))
	for i, claim := range claims {
		blob, err := p.gatherer.Gather(ctx, claim.Text, record.TweetText)
		if err != nil {
			return fmt.Errorf("claim %d: %w", i+1, err)
		}

		verdict, err := p.analyzer.Analyze(ctx, claim.Text, record.TweetText, blob)
		if err != nil {
			return fmt.Errorf("claim %d: %w", i+1, err)
		}

		results = append(results, model.ClaimResult{
			Claim:   claim.Text,
			Verdict: verdict,
			Sources: evidence.SourceURLs(blob),
		})
		log.Infow("claim analyzed", "claim", i+1, "label", verdict.Label, "confidence", verdict.Confidence)
	}

	assessment, err := p.synthesizer.Synthesize(ctx, record.TweetText, results)
	if err != nil {
		return err
	}

	record.Status = model.StatusComplete
	record.ClaimResults = results
	record.OverallAssessment = assessment
	record.CheckedAt = time.Now().UTC()
	if err := p.store.Put(ctx, record); err != nil {
		return err
	}

	p.notifier.Notify(ctx, p.completionMessage(record, results))
	log.Infow("fact-check complete", "claims", len(results))
	return nil
}

// fail writes the terminal error record. This is the only path that sets
// the error status.
func (p *Pipeline) fail(ctx context.Context, record *model.FactCheckResult, cause error) {
	p.log.Errorw("pipeline failed", "requestID", record.RequestID, "error", cause)

	record.Status = model.StatusError
	record.ClaimResults = []model.ClaimResult{}
	record.OverallAssessment = ""
	record.Error = cause.Error()
	record.CheckedAt = time.Now().UTC()

	if err := p.store.Put(ctx, record); err != nil {
		p.log.Errorw("failed to persist error record", "requestID", record.RequestID, "error", err)
	}

	p.notifier.Notify(ctx, notify.Message{
		Title:    "Fact-check failed",
		Body:     "The fact-check could not be completed. Please try again.",
		ClickURL: p.resultURL(record.RequestID),
		Severity: notify.SeverityError,
	})
}

// completionMessage builds the completion notification. With exactly one
// claim the display label is its verdict; otherwise a claim-count summary
// with a warning tag.
func (p *Pipeline) completionMessage(record *model.FactCheckResult, results []model.ClaimResult) notify.Message {
	display := fmt.Sprintf("%d claims analyzed", len(results))
	severity := notify.SeverityWarning

	if len(results) == 1 {
		label := results[0].Verdict.Label
		display = string(label)
		switch label {
		case model.LabelTrue:
			severity = notify.SeveritySuccess
		case model.LabelFalse:
			severity = notify.SeverityFailure
		}
	}

	return notify.Message{
		Title:    "Fact-check complete",
		Body:     display,
		ClickURL: p.resultURL(record.RequestID),
		Severity: severity,
	}
}

func (p *Pipeline) resultURL(requestID string) string {
	return p.baseURL + "/results/" + requestID
}
