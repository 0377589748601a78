package agileplace

import (
	"fmt"
	"time"
)

// CredentialError is returned when the domain or API token cannot be resolved.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return "agileplace: " + e.Message
}

// APIError is returned for any response that is neither a success nor a rate
// limit. Response holds the decoded JSON body when the body was valid JSON.
type APIError struct {
	StatusCode int
	Message    string
	Response   any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agileplace: API error (%d): %s", e.StatusCode, e.Message)
}

// RateLimitError is returned once every allowed attempt came back with HTTP 429.
// RetryAfter is the zero time when the last response had no parseable
// Retry-After header.
type RateLimitError struct {
	APIError
	RetryAfter time.Time
	Attempts   int
}

func newRateLimitError(retryAt time.Time, attempts int) *RateLimitError {
	return &RateLimitError{
		APIError: APIError{
			StatusCode: 429,
			Message:    "Rate limit exceeded",
		},
		RetryAfter: retryAt,
		Attempts:   attempts,
	}
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter.IsZero() {
		return fmt.Sprintf("agileplace: rate limit exceeded after %d attempts", e.Attempts)
	}
	return fmt.Sprintf("agileplace: rate limit exceeded after %d attempts (retry after %s)",
		e.Attempts, e.RetryAfter.UTC().Format(time.RFC1123))
}

// Unwrap exposes the embedded APIError so errors.As matches either type.
func (e *RateLimitError) Unwrap() error {
	return &e.APIError
}
