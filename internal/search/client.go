// Package search wraps the web-search provider used for evidence gathering.
package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
)

// Result is a single web search hit
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Searcher runs a web search query. Implementations never return an error
// for provider failures; a failed search yields an empty result list.
type Searcher interface {
	Search(ctx context.Context, query string, count int) []Result
}

// BraveClient queries the Brave Search API
type BraveClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *util.Limiter
	log        *zap.SugaredLogger
}

// NewBraveClient creates a new Brave Search client
func NewBraveClient(cfg model.SearchConfig, limiter *util.Limiter, log *zap.SugaredLogger) *BraveClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &BraveClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		log:     log,
	}
}

// braveResponse mirrors the subset of the Brave API response we consume
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs one query and returns up to count results.
// Provider errors degrade to an empty slice; they never abort the pipeline.
func (c *BraveClient) Search(ctx context.Context, query string, count int) []Result {
	if count <= 0 {
		count = 5
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			c.log.Warnw("search rate limit wait failed", "error", err)
			return nil
		}
	}

	reqURL := c.baseURL + "?q=" + url.QueryEscape(query) + "&count=" + strconv.Itoa(count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.Warnw("search request build failed", "error", err)
		return nil
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("search request failed", "query", query, "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("search returned non-200", "query", query, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		c.log.Warnw("search body read failed", "error", err)
		return nil
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.log.Warnw("search response parse failed", "error", err)
		return nil
	}

	results := make([]Result, 0, len(parsed.Web.Results))
	for i, r := range parsed.Web.Results {
		if i >= count {
			break
		}
		results = append(results, Result{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}

	return results
}
