// Package chat is a client for the apifreellm.com chat API. It builds typed
// request payloads, classifies failures into one error family, and keeps a
// bounded rolling window of conversation turns for context-augmented
// follow-up calls.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const chatEndpoint = "/api/chat"

// maxErrorBody caps how much of an error response body is attached to an
// APIError for diagnostics.
const maxErrorBody = 2048

// Client talks to one FreeLLM endpoint. It owns a pooled *http.Client and a
// single conversation history; neither is shared across Client instances.
//
// A Client is safe for sequential use. Two ChatWithContext calls issued
// concurrently on the same instance race on the history snapshot and must be
// serialized by the caller.
type Client struct {
	cfg     Config
	httpc   *http.Client
	history *History
	logger  *slog.Logger
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The Timeout of the
// supplied client is left untouched, so the caller owns the timeout policy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithLogger attaches a logger for request/response debug lines. Nil
// disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a Client from cfg, filling defaults for unset fields.
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg:     cfg,
		history: NewHistory(cfg.MaxHistory),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: cfg.Timeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// CallOption customizes a single chat call.
type CallOption func(*callOptions)

type callOptions struct {
	model         string
	temperature   *float64
	maxTokens     *int
	saveToHistory bool
}

// WithModel overrides the model for this call.
func WithModel(model string) CallOption {
	return func(o *callOptions) { o.model = model }
}

// WithTemperature sets the sampling temperature for this call. Values
// outside [0.0, 2.0] fail validation before any network activity.
func WithTemperature(t float64) CallOption {
	return func(o *callOptions) { o.temperature = &t }
}

// WithMaxTokens caps the generated tokens for this call. Non-positive
// values fail validation.
func WithMaxTokens(n int) CallOption {
	return func(o *callOptions) { o.maxTokens = &n }
}

// WithSaveToHistory appends the user message and the assistant reply to the
// conversation history when the call succeeds. Failures never touch history.
func WithSaveToHistory() CallOption {
	return func(o *callOptions) { o.saveToHistory = true }
}

// Chat sends one message and returns the typed response. Call defaults fall
// back to the configured defaults; absent optional fields are omitted from
// the payload entirely.
func (c *Client) Chat(ctx context.Context, message string, opts ...CallOption) (*Response, error) {
	o := c.applyCallOptions(opts)
	return c.chat(ctx, message, message, o)
}

// ChatWithContext prepends the rendered conversation context to message,
// sends the combined text, and on success records the original message (not
// the context-augmented one) plus the assistant reply in history.
func (c *Client) ChatWithContext(ctx context.Context, message string, opts ...CallOption) (*Response, error) {
	o := c.applyCallOptions(opts)
	o.saveToHistory = true

	full := message
	if cx := c.history.Context(); cx != "" {
		full = cx + "\nuser: " + message
	}
	return c.chat(ctx, full, message, o)
}

// History returns the client's conversation history.
func (c *Client) History() *History { return c.history }

// ClearHistory drops all retained conversation turns.
func (c *Client) ClearHistory() { c.history.Clear() }

// Close releases idle pooled connections. The client remains usable; a
// later call reopens connections on demand.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

func (c *Client) applyCallOptions(opts []CallOption) callOptions {
	o := callOptions{
		model:       c.cfg.DefaultModel,
		temperature: c.cfg.DefaultTemperature,
		maxTokens:   c.cfg.DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// chat runs one request lifecycle: validate, build, send, classify, and on
// success optionally append recordMsg and the reply to history. sendMsg is
// what goes on the wire; recordMsg is what history remembers, which differs
// from sendMsg only for context-augmented calls.
func (c *Client) chat(ctx context.Context, sendMsg, recordMsg string, o callOptions) (*Response, error) {
	req := Request{
		Message:     sendMsg,
		Model:       o.model,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &APIError{Message: "encode request: " + err.Error()}
	}

	requestID := uuid.NewString()
	url := strings.TrimRight(c.cfg.BaseURL, "/") + chatEndpoint
	c.logger.Debug("chat_request", "request_id", requestID, "url", url, "bytes", len(payload))

	resp, err := c.send(ctx, requestID, url, payload)
	if err != nil {
		return nil, err
	}

	if o.saveToHistory {
		// Roles here are package constants, so Add cannot fail.
		_ = c.history.Add(RoleUser, recordMsg)
		_ = c.history.Add(RoleAssistant, resp.Text)
	}
	return resp, nil
}

// send performs the HTTP round trip with bounded retry on connection and
// timeout failures. API errors and anything else surface on first
// occurrence.
func (c *Client) send(ctx context.Context, requestID, url string, payload []byte) (*Response, error) {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("chat_retry", "request_id", requestID, "attempt", attempt, "backoff", backoff.String())
			select {
			case <-ctx.Done():
				return nil, c.classifyTransport(ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := c.sendOnce(ctx, requestID, url, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var ce *ConnectionError
		var te *TimeoutError
		if !errors.As(err, &ce) && !errors.As(err, &te) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) sendOnce(ctx context.Context, requestID, url string, payload []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Message: "build request: " + err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range c.cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransport(err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.classifyTransport(err)
	}

	if httpResp.StatusCode >= 400 {
		return nil, c.apiError(httpResp.StatusCode, raw)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    "malformed response body: " + err.Error(),
			RawBody:    truncateBody(raw),
		}
	}

	resp := parseResponse(obj)
	c.logger.Debug("chat_response", "request_id", requestID, "status", httpResp.StatusCode, "chars", len(resp.Text))
	return resp, nil
}

// classifyTransport maps a transport failure onto the error family: timeout
// signals become *TimeoutError, everything else *ConnectionError.
func (c *Client) classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Timeout: c.effectiveTimeout(), Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{Timeout: c.effectiveTimeout(), Err: err}
	}
	return &ConnectionError{Err: err}
}

// effectiveTimeout names the timeout actually bounding requests. A client
// installed via WithHTTPClient owns the timeout policy, so its Timeout wins
// over the configured one; with no transport timeout the only bound left is
// the caller's context deadline.
func (c *Client) effectiveTimeout() string {
	if c.httpc.Timeout > 0 {
		return c.httpc.Timeout.String()
	}
	return "context deadline"
}

func (c *Client) apiError(status int, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    "API returned error status",
		RawBody:    truncateBody(raw),
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Body = body
		if msg, ok := body["error"].(string); ok {
			apiErr.Message = msg
		} else if msg, ok := body["message"].(string); ok {
			apiErr.Message = msg
		}
	}
	return apiErr
}

func truncateBody(raw []byte) string {
	if len(raw) > maxErrorBody {
		return string(raw[:maxErrorBody]) + "..."
	}
	return string(raw)
}
