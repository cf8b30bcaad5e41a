package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/claimlens/claimlens/internal/util"
)

// metaVariants are the description attributes tried on mirror pages,
// in preference order.
var metaVariants = []struct {
	attr  string // "name" or "property"
	value string
}{
	{"name", "description"},
	{"property", "og:description"},
	{"name", "twitter:description"},
}

// MirrorFetcher fetches lightweight mirror renditions of a post page and
// scans them for the post text in a meta-description tag
type MirrorFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *util.Limiter
	robots     *util.RobotsChecker
}

// NewMirrorFetcher creates a new mirror fetcher
func NewMirrorFetcher(timeout time.Duration, userAgent string, maxBytes int64, limiter *util.Limiter, robots *util.RobotsChecker) *MirrorFetcher {
	return &MirrorFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		limiter:   limiter,
		robots:    robots,
	}
}

// MirrorURL rewrites a post URL onto a mirror host, keeping path and query.
// The mirror host may carry an explicit scheme ("http://localhost:8081");
// otherwise https is assumed.
func MirrorURL(postURL, mirrorHost string) (string, error) {
	parsed, err := url.Parse(postURL)
	if err != nil {
		return "", fmt.Errorf("parse post URL: %w", err)
	}

	parsed.Scheme = "https"
	if strings.Contains(mirrorHost, "://") {
		mirror, err := url.Parse(mirrorHost)
		if err != nil {
			return "", fmt.Errorf("parse mirror host: %w", err)
		}
		parsed.Scheme = mirror.Scheme
		mirrorHost = mirror.Host
	}
	parsed.Host = mirrorHost

	return parsed.String(), nil
}

// FetchDescription fetches the mirror page and returns the content of the
// first matching meta-description variant, or an empty string if none is
// present. Network failures are returned as errors for the caller to log
// and fall through.
func (f *MirrorFetcher) FetchDescription(ctx context.Context, mirrorURL string) (string, error) {
	if f.robots != nil && !f.robots.IsAllowed(ctx, mirrorURL) {
		return "", fmt.Errorf("robots.txt disallows %s", mirrorURL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, mirrorURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirrorURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch mirror: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return ScanMetaDescription(string(body)), nil
}

// ScanMetaDescription parses HTML and returns the first meta-description
// content found, trying the known attribute variants in order
func ScanMetaDescription(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	found := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, property, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name":
					name = attr.Val
				case "property":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if content != "" {
				if name != "" {
					found["name:"+name] = content
				}
				if property != "" {
					found["property:"+property] = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, v := range metaVariants {
		if content, ok := found[v.attr+":"+v.value]; ok {
			return content
		}
	}

	return ""
}
