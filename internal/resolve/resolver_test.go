package resolve

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/search"
)

type stubProvider struct {
	completeResponse string
	completeErr      error
	imageResponse    string
	imageErr         error
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) Complete(context.Context, llm.CompletionRequest) (string, error) {
	return s.completeResponse, s.completeErr
}
func (s *stubProvider) ExtractImageText(context.Context, llm.ImageRequest) (string, error) {
	return s.imageResponse, s.imageErr
}
func (s *stubProvider) IsAvailable(context.Context) bool { return true }

type stubSearcher struct {
	results []search.Result
}

func (s *stubSearcher) Search(context.Context, string, int) []search.Result {
	return s.results
}

func newTestResolver(provider llm.Provider, mirrorHosts []string, searcher search.Searcher) *Resolver {
	mirrors := NewMirrorFetcher(5*time.Second, "test-agent", 1_000_000, nil, nil)
	return NewResolver(provider, mirrors, mirrorHosts, searcher, zap.NewNop().Sugar())
}

func TestResolver_DirectTextWins(t *testing.T) {
	r := newTestResolver(&stubProvider{}, nil, &stubSearcher{})

	got, err := r.Resolve(context.Background(), Input{
		Text:    "  The bridge opened in 2020.  ",
		PostURL: "https://x.com/a/status/1",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "The bridge opened in 2020." {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_NoInput(t *testing.T) {
	r := newTestResolver(&stubProvider{}, nil, &stubSearcher{})

	_, err := r.Resolve(context.Background(), Input{})
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Stage != StageInput {
		t.Fatalf("Expected input-stage error, got %v", err)
	}
}

func TestResolver_ImageNotFoundSentinel(t *testing.T) {
	r := newTestResolver(&stubProvider{imageResponse: "NOT_FOUND"}, nil, &stubSearcher{})

	_, err := r.Resolve(context.Background(), Input{ImageBase64: b64WithMagic([]byte("\x89PNG\r\n\x1a\n"))})
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Stage != StageImage {
		t.Fatalf("Expected image-stage error, got %v", err)
	}
}

func TestResolver_ImageExtraction(t *testing.T) {
	r := newTestResolver(&stubProvider{imageResponse: "Water boils at 100C at sea level"}, nil, &stubSearcher{})

	got, err := r.Resolve(context.Background(), Input{ImageBase64: b64WithMagic([]byte("\xff\xd8\xff\xe0"))})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "Water boils at 100C at sea level" {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_URLViaMirror(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><meta name="description" content="The mayor announced the budget was cut by half."></head></html>`))
	}))
	defer server.Close()

	r := newTestResolver(&stubProvider{}, []string{server.URL}, &stubSearcher{})

	got, err := r.Resolve(context.Background(), Input{PostURL: "https://x.com/gov/status/9"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "The mayor announced the budget was cut by half." {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_URLMirrorBoilerplateFallsToSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><meta name="description" content="JavaScript is disabled. Sign up now to continue."></head></html>`))
	}))
	defer server.Close()

	searcher := &stubSearcher{results: []search.Result{
		{Title: "post", URL: "https://x.com/gov/status/9", Description: "The mayor announced the budget was cut by half."},
	}}
	r := newTestResolver(&stubProvider{}, []string{server.URL}, searcher)

	got, err := r.Resolve(context.Background(), Input{PostURL: "https://x.com/gov/status/9"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "The mayor announced the budget was cut by half." {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_URLPrefersPlatformSnippet(t *testing.T) {
	searcher := &stubSearcher{results: []search.Result{
		{Title: "other", URL: "https://blog.example.com/a", Description: "A long unrelated description about something else entirely."},
		{Title: "post", URL: "https://www.x.com/gov/status/9", Description: "The platform snippet carrying the actual post text."},
	}}
	r := newTestResolver(&stubProvider{}, nil, searcher)

	got, err := r.Resolve(context.Background(), Input{PostURL: "https://x.com/gov/status/9"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "The platform snippet carrying the actual post text." {
		t.Errorf("Expected platform snippet preferred, got %q", got)
	}
}

func TestResolver_URLSnippetLLMFallback(t *testing.T) {
	searcher := &stubSearcher{results: []search.Result{
		{Title: "hit", URL: "https://agg.example.com/x", Description: "short"},
	}}
	provider := &stubProvider{completeResponse: "The recovered post text from snippet aggregation."}
	r := newTestResolver(provider, nil, searcher)

	got, err := r.Resolve(context.Background(), Input{PostURL: "https://x.com/gov/status/9"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "The recovered post text from snippet aggregation." {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_URLExhaustedFails(t *testing.T) {
	provider := &stubProvider{completeResponse: "NOT_FOUND"}
	r := newTestResolver(provider, nil, &stubSearcher{results: []search.Result{
		{Title: "hit", URL: "https://agg.example.com/x", Description: "short"},
	}})

	_, err := r.Resolve(context.Background(), Input{PostURL: "https://x.com/gov/status/9"})
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Stage != StageURL {
		t.Fatalf("Expected url-stage error, got %v", err)
	}
}
