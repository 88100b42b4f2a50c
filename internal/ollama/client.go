// Package ollama is a thin streaming client for an Ollama-compatible
// inference server. It holds no state between calls beyond its
// configured base URL and default timeout, so a single Client is safe
// for concurrent requests.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the standard local Ollama endpoint.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout is the wall-clock deadline for a whole generation
	// request, armed when the request starts (not per fragment).
	DefaultTimeout = 120 * time.Second

	// healthTimeout bounds the model-list probe in CheckHealth.
	healthTimeout = 5 * time.Second

	// maxLineBytes is the scanner buffer limit for one NDJSON line.
	maxLineBytes = 1 << 20
)

// Client talks to the inference server's generate and tags endpoints.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default generation deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateRequest describes one generation call.
type GenerateRequest struct {
	Model  string
	Prompt string

	// Timeout overrides the client's default deadline when positive.
	Timeout time.Duration
}

// Event is one item of a generation stream: a text fragment, the
// terminal done marker, or a terminal error. Events arrive in strict
// wire order and the channel is closed after the terminal event.
type Event struct {
	Fragment string
	Done     bool
	Err      error
}

// generateLine is one NDJSON line of the streaming response body.
type generateLine struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate issues a streaming generation request and returns the event
// channel. Failures that happen before any response is received are
// retried exactly once with no backoff; 4xx responses and anything
// after streaming has begun are surfaced without retry. Cancelling ctx
// aborts the transport immediately.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (<-chan Event, error) {
	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)

	body, err := json.Marshal(map[string]any{
		"model":  req.Model,
		"prompt": req.Prompt,
		"stream": true,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var resp *http.Response
	var lastErr error
	const maxAttempts = 2
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, lastErr = c.post(reqCtx, "/api/generate", body)
		if lastErr == nil {
			break
		}
		// Cancellation and the deadline are never retried. Anything else
		// at this point is a pre-response transport failure, which gets
		// the one retry.
		if reqCtx.Err() != nil || attempt == maxAttempts {
			cancel()
			return nil, &ConnectionError{Attempts: attempt, Err: lastErr}
		}
		c.logger.Debug("retrying generate request", zap.String("model", req.Model), zap.Error(lastErr))
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, &StatusError{Code: resp.StatusCode}
	}

	events := make(chan Event)
	go c.stream(reqCtx, cancel, resp, events, timeout)
	return events, nil
}

// stream reads NDJSON lines off the response body and forwards them as
// events. It owns the response body and the request context.
func (c *Client) stream(ctx context.Context, cancel context.CancelFunc, resp *http.Response, events chan<- Event, timeout time.Duration) {
	defer close(events)
	defer cancel()
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var l generateLine
		if err := json.Unmarshal(line, &l); err != nil {
			events <- Event{Err: fmt.Errorf("decode stream line: %w", err)}
			return
		}
		if l.Done {
			events <- Event{Done: true}
			return
		}
		if !c.sendFragment(ctx, events, Event{Fragment: l.Response}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		switch ctx.Err() {
		case context.DeadlineExceeded:
			events <- Event{Err: &TimeoutError{After: timeout}}
		case context.Canceled:
			// Caller cancelled; end the stream silently.
		default:
			// A drop after streaming began is terminal: resuming a
			// partial generation is not well-defined, so no retry.
			events <- Event{Err: fmt.Errorf("stream interrupted: %w", err)}
		}
	}
	// EOF without a done line: the server closed the connection, which
	// also completes the stream.
}

// sendFragment delivers a fragment unless the context has ended first.
// Terminal events (Done and Err) never go through here: they use an
// unconditional send so they cannot race the expiring context and be
// dropped. The consumer contract is a single reader draining until
// close, so those sends cannot block forever.
func (c *Client) sendFragment(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// ModelInfo describes one installed model as reported by the server.
type ModelInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

type tagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ListModels fetches the installed models from the tags endpoint.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	return tags.Models, nil
}

// Health reports whether the inference server is reachable and which
// models it serves.
type Health struct {
	Connected bool
	Models    []string
}

// CheckHealth probes the server under a bounded timeout. It never
// returns an error: any transport or decode failure reports as
// disconnected with an empty model list.
func (c *Client) CheckHealth(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	models, err := c.ListModels(ctx)
	if err != nil {
		c.logger.Debug("health check failed", zap.Error(err))
		return Health{Connected: false, Models: []string{}}
	}

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return Health{Connected: true, Models: names}
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.http.Do(httpReq)
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string { return c.baseURL }
