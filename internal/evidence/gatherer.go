// Package evidence gathers and formats web search results for claim analysis.
package evidence

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/search"
)

// BlockDelimiter separates per-query evidence blocks in the gathered blob
const BlockDelimiter = "\n\n---\n\n"

// Gatherer derives search queries for a claim and collects formatted evidence
type Gatherer struct {
	deriver  *extract.QueryDeriver
	searcher search.Searcher
	perQuery int
	log      *zap.SugaredLogger
}

// NewGatherer creates a new evidence gatherer
func NewGatherer(deriver *extract.QueryDeriver, searcher search.Searcher, perQuery int, log *zap.SugaredLogger) *Gatherer {
	if perQuery <= 0 {
		perQuery = 5
	}
	return &Gatherer{
		deriver:  deriver,
		searcher: searcher,
		perQuery: perQuery,
		log:      log,
	}
}

// Gather derives queries for the claim and runs them concurrently, returning
// one evidence blob with a labeled block per query in derivation order.
// A query with no results still produces a block, preserving positions.
func (g *Gatherer) Gather(ctx context.Context, claimText, postText string) (string, error) {
	queries, err := g.deriver.Derive(ctx, claimText, postText)
	if err != nil {
		return "", fmt.Errorf("derive queries: %w", err)
	}

	if len(queries) == 0 {
		return "No search queries could be derived for this claim.", nil
	}

	for _, q := range queries {
		g.log.Debugw("evidence query", "query", q.Query, "rationale", q.Rationale)
	}

	// One slot per query keeps blocks in derivation order regardless of
	// which search returns first.
	blocks := make([]string, len(queries))
	grp, grpCtx := errgroup.WithContext(ctx)

	for i, q := range queries {
		grp.Go(func() error {
			results := g.searcher.Search(grpCtx, q.Query, g.perQuery)
			blocks[i] = FormatBlock(q, results)
			return nil
		})
	}

	// Searches never return errors, so this only observes ctx cancellation.
	if err := grp.Wait(); err != nil {
		return "", err
	}

	return strings.Join(blocks, BlockDelimiter), nil
}

// FormatBlock renders one query's results as a labeled text block
func FormatBlock(query model.SearchQuery, results []search.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search query: %s\n", query.Query)

	if len(results) == 0 {
		b.WriteString("No results were found for this query.")
		return b.String()
	}

	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   URL: %s\n   %s\n", i+1, r.Title, r.URL, r.Description)
	}

	return strings.TrimRight(b.String(), "\n")
}
