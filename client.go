package agileplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// maxBackoffInterval caps the exponential schedule for large retry counts.
const maxBackoffInterval = 5 * time.Minute

// Stats holds atomic request counters.
type Stats struct {
	TotalRequests uint64
	TotalErrors   uint64
	RateLimited   uint64
}

// StatsProvider exposes metrics for external collectors.
type StatsProvider interface {
	Stats() Stats
}

// Request describes one logical API call. Path is relative to the API root
// (e.g. "/board/123"). Body, when non-nil, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client performs AgilePlace API calls, retrying requests that are rate
// limited. It is safe for concurrent use.
type Client struct {
	creds *Credentials
	cfg   *config
	log   hclog.Logger

	mu            sync.Mutex
	httpClient    *http.Client
	limiter       *rate.Limiter
	originalRate  rate.Limit
	adaptiveTimer *time.Timer
	closed        bool

	totalReqs   atomic.Uint64
	totalErrors atomic.Uint64
	rateLimited atomic.Uint64
}

// Compile-time interface check.
var _ StatsProvider = (*Client)(nil)

// New creates a Client for the given credentials. The underlying HTTP client
// is created on first use.
func New(creds *Credentials, opts ...Option) *Client {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	if cfg.baseURL == "" && creds != nil {
		cfg.baseURL = creds.BaseURL()
	}
	cfg.baseURL = strings.TrimRight(cfg.baseURL, "/")

	var lim *rate.Limiter
	if cfg.rps > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.rps), cfg.burst)
	}

	return &Client{
		creds:        creds,
		cfg:          cfg,
		log:          cfg.logger.Named("agileplace"),
		limiter:      lim,
		originalRate: rate.Limit(cfg.rps),
	}
}

// Close releases the underlying HTTP connections, stops the adaptive timer
// and restores the configured rate. The client may be used again afterwards; a new connection pool is
// opened on the next call.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.adaptiveTimer != nil {
		c.adaptiveTimer.Stop()
		c.adaptiveTimer = nil
	}
	if c.limiter != nil {
		c.limiter.SetLimit(c.originalRate)
	}
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// Stats returns a snapshot of request statistics.
func (c *Client) Stats() Stats {
	return Stats{
		TotalRequests: c.totalReqs.Load(),
		TotalErrors:   c.totalErrors.Load(),
		RateLimited:   c.rateLimited.Load(),
	}
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.cfg.baseURL
}

// Get performs a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request. Some endpoints (card connections, board
// access) take a JSON body; pass nil otherwise.
func (c *Client) Delete(ctx context.Context, path string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: body})
}

// Do executes a request, retrying while the API answers 429.
//
// It returns the decoded JSON body (map[string]any or []any), or an empty map
// for responses without content. Non-success responses are returned as
// *APIError, exhausted retries as *RateLimitError. Transport errors are
// returned wrapped and unclassified.
func (c *Client) Do(ctx context.Context, r *Request) (any, error) {
	if !c.creds.Valid() {
		return nil, &CredentialError{Message: "client credentials are missing a domain or token"}
	}
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("agileplace: unsupported method %q", r.Method)
	}

	var bodyBytes []byte
	if r.Body != nil {
		var err error
		bodyBytes, err = json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("agileplace: marshal request: %w", err)
		}
	}

	c.totalReqs.Add(1)
	hc := c.client()
	bo := c.newBackOff()

	for attempt := 0; ; attempt++ {
		if err := c.waitRateLimit(ctx); err != nil {
			return nil, fmt.Errorf("agileplace: rate limit wait: %w", err)
		}

		out, err := c.send(ctx, hc, r, bodyBytes)
		if err != nil {
			c.totalErrors.Add(1)
			return nil, err
		}

		switch out.Kind {
		case OutcomeSuccess:
			return out.Body, nil
		case OutcomeEmpty:
			return map[string]any{}, nil
		case OutcomeFailure:
			c.totalErrors.Add(1)
			return nil, &APIError{
				StatusCode: out.StatusCode,
				Message:    out.Message,
				Response:   out.Body,
			}
		}

		// Rate limited.
		c.rateLimited.Add(1)
		c.reduceRateLimit()

		backoffWait := bo.NextBackOff()
		if attempt+1 >= c.cfg.maxRetries {
			c.totalErrors.Add(1)
			c.log.Error("rate limit exceeded after all retries",
				"method", r.Method, "path", r.Path, "attempts", attempt+1)
			return nil, newRateLimitError(out.RetryAt, attempt+1)
		}

		wait := backoffWait
		if !out.RetryAt.IsZero() {
			wait = retryWait(out.RetryAt, time.Now(), c.cfg.maxRetryWait)
		}
		c.log.Warn("rate limit hit, retrying",
			"method", r.Method, "path", r.Path, "wait", wait,
			"attempt", attempt+1, "max_attempts", c.cfg.maxRetries)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// send performs a single HTTP round trip and classifies the response.
func (c *Client) send(ctx context.Context, hc *http.Client, r *Request, body []byte) (Outcome, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.buildURL(r.Path, r.Query), reader)
	if err != nil {
		return Outcome{}, fmt.Errorf("agileplace: build request: %w", err)
	}
	req.Header = c.creds.Headers()

	if c.cfg.requestHook != nil {
		c.cfg.requestHook(req)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("agileplace: http request: %w", err)
	}
	defer resp.Body.Close()

	if c.cfg.responseHook != nil {
		c.cfg.responseHook(resp)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.maxResponseSize))
	if err != nil {
		return Outcome{}, fmt.Errorf("agileplace: read response: %w", err)
	}

	if remaining := resp.Header.Get("X-Ratelimit-Remaining"); remaining != "" {
		c.log.Debug("rate limit", "remaining", remaining,
			"limit", resp.Header.Get("X-Ratelimit-Limit"))
	}

	if resp.StatusCode == http.StatusTooManyRequests && c.cfg.onRateLimited != nil {
		c.cfg.onRateLimited(req)
	}

	return classify(resp.StatusCode, resp.Header, respBody)
}

func (c *Client) buildURL(path string, query url.Values) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.cfg.baseURL + path
	if len(query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return u + sep + query.Encode()
}

// client returns the shared HTTP client, creating it on first use.
func (c *Client) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.closed = false
		if c.cfg.httpClient != nil {
			c.httpClient = c.cfg.httpClient
		} else {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.MaxIdleConnsPerHost = 10
			c.httpClient = &http.Client{Timeout: c.cfg.timeout, Transport: transport}
		}
	}
	return c.httpClient
}

// newBackOff returns the per-call exponential schedule: initialBackoff,
// doubled on each rate-limited attempt, without jitter.
func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     c.cfg.initialBackoff,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         maxBackoffInterval,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

func (c *Client) waitRateLimit(ctx context.Context) error {
	c.mu.Lock()
	lim := c.limiter
	c.mu.Unlock()
	if lim == nil {
		return nil
	}
	return lim.Wait(ctx)
}

// reduceRateLimit halves the token bucket rate and schedules its restore.
func (c *Client) reduceRateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.limiter == nil || c.closed {
		return
	}

	reduced := c.originalRate / 2
	if reduced < 0.01 {
		reduced = 0.01
	}
	c.limiter.SetLimit(reduced)

	if c.adaptiveTimer != nil {
		c.adaptiveTimer.Stop()
	}
	c.adaptiveTimer = time.AfterFunc(c.cfg.adaptiveCooldown, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.closed && c.limiter != nil {
			c.limiter.SetLimit(c.originalRate)
		}
	})
}
