package agileplace

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Retry defaults: three attempts, the first retry after two seconds.
const (
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 2 * time.Second
)

// Option configures a Client.
type Option func(*config)

type config struct {
	baseURL          string
	rps              float64
	burst            int
	maxRetries       int
	initialBackoff   time.Duration
	maxRetryWait     time.Duration
	adaptiveCooldown time.Duration
	maxResponseSize  int64
	timeout          time.Duration
	httpClient       *http.Client
	logger           hclog.Logger

	onRateLimited func(req *http.Request)

	requestHook  func(req *http.Request)
	responseHook func(resp *http.Response)
}

func defaultConfig() *config {
	return &config{
		rps:              0, // no proactive rate limiting by default
		burst:            1,
		maxRetries:       DefaultMaxRetries,
		initialBackoff:   DefaultInitialBackoff,
		maxRetryWait:     60 * time.Second,
		adaptiveCooldown: 5 * time.Minute,
		maxResponseSize:  10 * 1024 * 1024, // 10 MB
		timeout:          30 * time.Second,
		logger:           hclog.NewNullLogger(),
	}
}

// WithBaseURL overrides the API root derived from the credentials. Useful for
// proxies and tests.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithRetry sets the total number of attempts made for a rate-limited request
// (including the first) and the initial exponential backoff. The backoff
// doubles on each attempt: with the defaults (3, 2s) the waits are 2s and 4s.
func WithRetry(maxRetries int, initialBackoff time.Duration) Option {
	return func(c *config) {
		if maxRetries < 1 {
			maxRetries = 1
		}
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
	}
}

// WithMaxRetryWait caps the wait derived from a Retry-After date.
func WithMaxRetryWait(d time.Duration) Option {
	return func(c *config) { c.maxRetryWait = d }
}

// WithRateLimit enables a client-side token bucket in requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) {
		c.rps = rps
		if burst > 0 {
			c.burst = burst
		}
	}
}

// WithAdaptive sets the cooldown for adaptive rate reduction. When a 429 is
// received the token bucket rate is halved and restored after this duration.
// It has no effect unless WithRateLimit is also set.
func WithAdaptive(cooldown time.Duration) Option {
	return func(c *config) { c.adaptiveCooldown = cooldown }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithMaxResponseSize sets the maximum response body size in bytes.
func WithMaxResponseSize(n int64) Option {
	return func(c *config) { c.maxResponseSize = n }
}

// WithHTTPClient sets a custom underlying *http.Client.
// The timeout option is ignored when a custom client is provided.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithLogger sets the logger used for rate limit diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnRateLimited sets a callback invoked for every 429 response.
func WithOnRateLimited(fn func(req *http.Request)) Option {
	return func(c *config) { c.onRateLimited = fn }
}

// WithRequestHook sets a hook called before each request is sent.
func WithRequestHook(fn func(req *http.Request)) Option {
	return func(c *config) { c.requestHook = fn }
}

// WithResponseHook sets a hook called after each response is received.
func WithResponseHook(fn func(resp *http.Response)) Option {
	return func(c *config) { c.responseHook = fn }
}
