package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/analyze"
	"github.com/claimlens/claimlens/internal/evidence"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/notify"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/resolve"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/store"
)

// noClaimsProvider answers every completion with an empty claim list so
// submitted pipelines finish quickly
type noClaimsProvider struct{}

func (noClaimsProvider) Name() string { return "stub" }
func (noClaimsProvider) Complete(context.Context, llm.CompletionRequest) (string, error) {
	return "[]", nil
}
func (noClaimsProvider) ExtractImageText(context.Context, llm.ImageRequest) (string, error) {
	return "", errors.New("not implemented")
}
func (noClaimsProvider) IsAvailable(context.Context) bool { return true }

type emptySearcher struct{}

func (emptySearcher) Search(context.Context, string, int) []search.Result { return nil }

func newTestServer(st store.Store) *Server {
	log := zap.NewNop().Sugar()
	provider := noClaimsProvider{}

	mirrors := resolve.NewMirrorFetcher(time.Second, "test-agent", 1_000_000, nil, nil)
	resolver := resolve.NewResolver(provider, mirrors, nil, emptySearcher{}, log)

	p := pipeline.NewPipeline(
		extract.NewClaimExtractor(provider, log),
		evidence.NewGatherer(extract.NewQueryDeriver(provider, log), emptySearcher{}, 5, log),
		analyze.NewAnalyzer(provider, log),
		analyze.NewSynthesizer(provider),
		st, notify.NopNotifier{}, pipeline.NewRunner(log), "http://localhost:8080", log,
	)

	cfg := model.ServerConfig{
		Addr:          ":0",
		BaseURL:       "http://localhost:8080",
		AllowOrigins:  []string{"*"},
		MaxTextLength: 1000,
	}

	return NewServer(resolver, p, st, cfg, log)
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmit_ValidText(t *testing.T) {
	st := store.NewMemoryStore(time.Hour)
	router := newTestServer(st).Router()

	w := postJSON(router, "/api/fact-check", `{"text": "Water boils at 100C at sea level"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp submitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("Expected a request ID")
	}
	if resp.Status != "processing" {
		t.Errorf("Expected processing status, got %s", resp.Status)
	}
	if !strings.Contains(resp.ResultURL, resp.RequestID) {
		t.Errorf("Result URL missing request ID: %s", resp.ResultURL)
	}

	// The processing record is retrievable immediately.
	record, err := st.Get(context.Background(), resp.RequestID)
	if err != nil {
		t.Fatalf("Expected immediate record, got %v", err)
	}
	if record.TweetText != "Water boils at 100C at sea level" {
		t.Errorf("Unexpected recorded text: %q", record.TweetText)
	}
}

func TestSubmit_InvalidBody(t *testing.T) {
	router := newTestServer(store.NewMemoryStore(time.Hour)).Router()

	w := postJSON(router, "/api/fact-check", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestSubmit_NoInput(t *testing.T) {
	router := newTestServer(store.NewMemoryStore(time.Hour)).Router()

	w := postJSON(router, "/api/fact-check", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestSubmit_LengthBoundary(t *testing.T) {
	st := store.NewMemoryStore(time.Hour)
	router := newTestServer(st).Router()

	atLimit := strings.Repeat("a", 1000)
	w := postJSON(router, "/api/fact-check", `{"text": "`+atLimit+`"}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 1000 chars accepted, got %d: %s", w.Code, w.Body.String())
	}

	overLimit := strings.Repeat("a", 1001)
	w = postJSON(router, "/api/fact-check", `{"text": "`+overLimit+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 1001 chars rejected, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "length") {
		t.Errorf("Expected length error message, got %s", w.Body.String())
	}
}

func TestSubmit_ShortImageRejected(t *testing.T) {
	st := store.NewMemoryStore(time.Hour)
	router := newTestServer(st).Router()

	w := postJSON(router, "/api/fact-check", `{"image": "AAAA"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for short image payload, got %d", w.Code)
	}
}

func TestResult_NotFound(t *testing.T) {
	router := newTestServer(store.NewMemoryStore(time.Hour)).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/fact-check/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestResult_CompleteRecordVerbatimAndCacheable(t *testing.T) {
	st := store.NewMemoryStore(time.Hour)
	record := &model.FactCheckResult{
		RequestID: "req-9",
		Status:    model.StatusComplete,
		TweetText: "post",
		ClaimResults: []model.ClaimResult{
			{Claim: "c", Verdict: model.Verdict{Label: model.LabelTrue, Confidence: model.ConfidenceHigh, Explanation: "e", EvidenceSnippets: []string{}}, Sources: []string{"https://s.example.com"}},
		},
		OverallAssessment: "fine",
		CheckedAt:         time.Now().UTC(),
	}
	if err := st.Put(context.Background(), record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	router := newTestServer(st).Router()

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/fact-check/req-9", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := get()
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age") {
		t.Errorf("Expected cacheable terminal result, got Cache-Control %q", cc)
	}

	var got model.FactCheckResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.OverallAssessment != "fine" || len(got.ClaimResults) != 1 {
		t.Errorf("Record not returned verbatim: %+v", got)
	}

	// Repeated reads return identical content.
	if second := get(); second.Body.String() != w.Body.String() {
		t.Error("Expected repeated reads to be identical")
	}
}

func TestResult_ProcessingNotCached(t *testing.T) {
	st := store.NewMemoryStore(time.Hour)
	_ = st.Put(context.Background(), &model.FactCheckResult{
		RequestID:    "req-10",
		Status:       model.StatusProcessing,
		ClaimResults: []model.ClaimResult{},
	})

	router := newTestServer(st).Router()
	req := httptest.NewRequest(http.MethodGet, "/api/fact-check/req-10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Expected no-store for processing record, got %q", cc)
	}
}

func TestResultPage_RendersRequestID(t *testing.T) {
	router := newTestServer(store.NewMemoryStore(time.Hour)).Router()

	req := httptest.NewRequest(http.MethodGet, "/results/req-42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "req-42") {
		t.Error("Expected request ID rendered into page")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestServer(store.NewMemoryStore(time.Hour)).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}
