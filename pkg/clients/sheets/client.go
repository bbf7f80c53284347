package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ggrmusic/ggr-web/pkg/models"
)

// DefaultTimeout bounds a single webhook call.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// ErrNotConfigured is returned before any network call when no webhook URL
// has been configured.
var ErrNotConfigured = errors.New("google sheets webhook URL not configured")

// TransportError is returned when the webhook could not be reached, timed
// out, or answered with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error calling google sheets webhook: %v", e.Err)
	}
	return fmt.Sprintf("google sheets webhook returned status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is returned when the webhook accepted the request but its
// script reported {"result":"error"}.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "google sheets webhook rejected record: " + e.Reason
}

// Delivery describes an accepted record.
type Delivery struct {
	Status string
	Row    string
}

// Client defines the interface for posting rows to the spreadsheet webhook
type Client interface {
	Send(ctx context.Context, record models.OutboundRecord) (Delivery, error)
}

type clientImpl struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*clientImpl)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request/response diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new Google Sheets webhook client. A zero timeout falls
// back to DefaultTimeout.
func NewClient(webhookURL string, timeout time.Duration, opts ...Option) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &clientImpl{
		webhookURL: strings.TrimSpace(webhookURL),
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type webhookResponse struct {
	Result string          `json:"result"`
	Error  string          `json:"error"`
	Row    json.RawMessage `json:"row"`
}

func (c *clientImpl) Send(ctx context.Context, record models.OutboundRecord) (Delivery, error) {
	if c.webhookURL == "" {
		return Delivery{}, ErrNotConfigured
	}

	jsonPayload, err := json.Marshal(record)
	if err != nil {
		return Delivery{}, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(jsonPayload))
	if err != nil {
		return Delivery{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Delivery{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Delivery{}, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("error reading response: %w", err)}
	}

	c.logger.Debug("google sheets webhook response",
		"status", resp.StatusCode,
		"body", truncate(string(body), 512),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Delivery{}, &TransportError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	// A 2xx body that isn't JSON is treated as an acceptance.
	var parsed webhookResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Warn("google sheets webhook returned non-JSON body", "err", err)
		return Delivery{Status: "success"}, nil
	}

	if parsed.Result == "error" {
		reason := strings.TrimSpace(parsed.Error)
		if reason == "" {
			reason = "Unknown error from Google Sheets"
		}
		return Delivery{}, &RejectedError{Reason: reason}
	}

	status := parsed.Result
	if status == "" {
		status = "success"
	}
	return Delivery{Status: status, Row: rowID(parsed.Row)}, nil
}

// rowID renders the optional row identifier, which scripts send either as a
// number or a string.
func rowID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

// truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
