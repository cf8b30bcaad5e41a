// Package notify delivers best-effort push notifications when a fact-check finishes.
package notify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
)

// Severity is the coarse tag attached to a notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityFailure Severity = "failure"
	SeverityError   Severity = "error"
)

// Message is one push notification
type Message struct {
	Title    string
	Body     string
	ClickURL string
	Severity Severity
}

// Notifier delivers a push message. Delivery is fire-and-forget: failures
// are logged by implementations and never returned to the pipeline.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// NtfyNotifier posts messages to an ntfy-compatible topic endpoint
type NtfyNotifier struct {
	endpoint   string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewNtfyNotifier creates a notifier for the configured topic endpoint
func NewNtfyNotifier(cfg model.NotifyConfig, log *zap.SugaredLogger) *NtfyNotifier {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &NtfyNotifier{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify posts the message. Any failure is logged and swallowed.
func (n *NtfyNotifier) Notify(ctx context.Context, msg Message) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.Body))
	if err != nil {
		n.log.Warnw("notification request build failed", "error", err)
		return
	}

	req.Header.Set("Title", msg.Title)
	req.Header.Set("Tags", tagFor(msg.Severity))
	if msg.ClickURL != "" {
		req.Header.Set("Click", msg.ClickURL)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Warnw("notification delivery failed", "error", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		n.log.Warnw("notification rejected", "status", resp.StatusCode)
	}
}

// tagFor maps a severity to an ntfy tag (rendered as an icon)
func tagFor(s Severity) string {
	switch s {
	case SeveritySuccess:
		return "white_check_mark"
	case SeverityFailure:
		return "x"
	case SeverityError:
		return "rotating_light"
	default:
		return "warning"
	}
}

// NopNotifier discards all messages; used when no endpoint is configured
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(context.Context, Message) {}
