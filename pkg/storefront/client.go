// Package storefront is the Go client for the storefront API. Every call
// goes through one envelope providing timeouts, bearer-token injection,
// error normalization, bounded retry with exponential backoff, and a
// circuit breaker owned by the client instance.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"solestore/pkg/platform/circuit"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	defaultBaseDelay  = 500 * time.Millisecond
	defaultMaxDelay   = 5 * time.Second
)

// TokenSource supplies the bearer token for outbound calls. An empty string
// means unauthenticated.
type TokenSource interface {
	Token() string
}

// Client issues storefront API calls with uniform resilience behavior.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuit.Breaker
	timeout    time.Duration
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	sleep      func(time.Duration)
	tokens     TokenSource
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetry sets the retry budget for network-classified failures: up to
// retries extra attempts, delays starting at base and doubling up to upper.
func WithRetry(retries int, base, upper time.Duration) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = retries
		}
		if base > 0 {
			c.baseDelay = base
		}
		if upper > 0 {
			c.maxDelay = upper
		}
	}
}

// WithBreaker replaces the client's circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithTokenSource wires the session's token into outbound calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withSleep replaces the inter-retry sleep; tests use it to observe delays
// without waiting them out.
func withSleep(sleep func(time.Duration)) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// New constructs a Client for the given API base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		breaker:    circuit.New("storefront-api"),
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
		sleep:      time.Sleep,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Breaker exposes the client's circuit breaker.
func (c *Client) Breaker() *circuit.Breaker {
	return c.breaker
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do runs one logical call: breaker gate, sequential attempts with doubling
// delay on network errors only, and breaker bookkeeping on the final outcome.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if !c.breaker.Allow() {
		return newError(KindUnavailable, "service temporarily unavailable", nil)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return newError(KindUnknown, "encode request body", err)
		}
	}

	var err error
	delay := c.baseDelay
	for attempt := 0; ; attempt++ {
		err = c.attempt(ctx, method, path, payload, out)
		if err == nil {
			c.breaker.RecordSuccess()
			return nil
		}
		if KindOf(err) != KindNetworkError || attempt >= c.maxRetries {
			break
		}
		c.logger.WarnContext(ctx, "retrying after network error",
			"method", method,
			"path", path,
			"attempt", attempt+1,
			"delay", delay,
		)
		c.sleep(delay)
		delay *= 2
		if delay > c.maxDelay {
			delay = c.maxDelay
		}
	}

	switch KindOf(err) {
	case KindNetworkError, KindTimeout, KindServerError, KindUnavailable:
		if opened := c.breaker.RecordFailure(); opened {
			c.logger.WarnContext(ctx, "circuit breaker opened", "breaker", c.breaker.Name())
		}
	default:
		// The server answered; the dependency is healthy.
		c.breaker.RecordSuccess()
	}
	return err
}

// attempt performs one HTTP round trip under the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return newError(KindUnknown, "build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := classifyTransport(err)
		return newError(kind, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(KindUnknown, "decode response body", err)
		}
	}
	return nil
}

// apiError is the server's error wire shape.
type apiError struct {
	Error       string   `json:"error"`
	Description string   `json:"error_description"`
	Details     []string `json:"details"`
}

func decodeError(resp *http.Response) error {
	kind := kindForStatus(resp.StatusCode)

	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return newError(kind, fmt.Sprintf("http %d", resp.StatusCode), nil)
	}
	message := body.Description
	if message == "" {
		message = body.Error
	}
	return &Error{Kind: kind, Message: message, Details: body.Details}
}
