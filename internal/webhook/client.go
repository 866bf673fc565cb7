// internal/webhook/client.go
//
// Client posts campaign briefs and feedback to the configured automation
// webhook. Each dispatch carries a monotonic sequence number; the TUI drops
// any response older than the newest dispatched request, so a slow first
// response can never overwrite a newer result.

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"campaigndeck/internal/node"
)

const (
	submitEventSuffix = ":submit"
	feedbackTypeValue = "feedback"

	// maxResponseBytes caps how much webhook output is read; automation
	// payloads are small JSON documents.
	maxResponseBytes = 4 << 20
)

// Response is one webhook reply, tagged with its request's sequence number.
// Payload is the decoded JSON body, or nil when the body was empty or not
// JSON — that is not an error, the webhook may answer with no content.
type Response struct {
	Seq     int64
	Payload any
}

// Client submits to automation webhooks. The zero value is not usable; call
// NewClient.
type Client struct {
	httpClient *http.Client
	clock      func() time.Time
	seq        atomic.Int64
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithClock allows tests to control request timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewClient builds a webhook client. No retries and no client-side timeout
// are applied; the transport's own limits govern, and the passed context
// cancels an in-flight request.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		clock:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// NextSeq reserves the sequence number for the next dispatch. Call it
// synchronously at the point the user action fires, before the request
// goroutine starts, so ordering matches user intent.
func (c *Client) NextSeq() int64 {
	return c.seq.Add(1)
}

// Latest returns the newest reserved sequence number.
func (c *Client) Latest() int64 {
	return c.seq.Load()
}

// envelope is the wire shape every webhook call uses.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Submit posts a campaign brief. The data map is copied and stamped with an
// ISO-8601 timestamp before sending.
func (c *Client) Submit(ctx context.Context, seq int64, url, slug string, data map[string]any) (*Response, error) {
	payload := cloneData(data)
	payload["timestamp"] = c.clock().Format(time.RFC3339)
	return c.post(ctx, seq, url, slug, payload)
}

// Feedback re-posts the original brief augmented with the trimmed feedback
// text, so the automation can revise its previous output.
func (c *Client) Feedback(ctx context.Context, seq int64, url, slug string, original map[string]any, feedback string) (*Response, error) {
	trimmed := strings.TrimSpace(feedback)
	if trimmed == "" {
		return nil, fmt.Errorf("webhook: feedback text is empty")
	}
	payload := cloneData(original)
	payload["type"] = feedbackTypeValue
	payload["feedback"] = trimmed
	payload["timestamp"] = c.clock().Format(time.RFC3339)
	return c.post(ctx, seq, url, slug, payload)
}

func (c *Client) post(ctx context.Context, seq int64, url, slug string, data map[string]any) (*Response, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("webhook: no URL configured")
	}
	body, err := json.Marshal(envelope{Type: slug + submitEventSuffix, Data: data})
	if err != nil {
		return nil, fmt.Errorf("webhook: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("webhook: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook: response status %d", resp.StatusCode)
	}
	// An empty or non-JSON body is a successful submission with no result.
	payload, err := node.Decode(raw)
	if err != nil {
		return &Response{Seq: seq}, nil
	}
	return &Response{Seq: seq, Payload: payload}, nil
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+2)
	for k, v := range data {
		out[k] = v
	}
	return out
}
