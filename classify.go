package agileplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OutcomeKind is the classification of a single HTTP response.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeRateLimited
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of classifying one response.
type Outcome struct {
	Kind OutcomeKind

	// Body is the decoded JSON for Success, and for Failure when the error
	// body was valid JSON.
	Body any

	// RetryAt is set for RateLimited when Retry-After held an HTTP-date.
	RetryAt time.Time

	StatusCode int
	Message    string
}

// classify maps a status, header set and fully read body to an Outcome.
// The returned error is non-nil only when a success body is not valid JSON.
func classify(status int, header http.Header, body []byte) (Outcome, error) {
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		if len(body) == 0 {
			return Outcome{Kind: OutcomeEmpty, StatusCode: status}, nil
		}
		v, err := decodeJSON(body)
		if err != nil {
			return Outcome{}, fmt.Errorf("agileplace: decode response: %w", err)
		}
		return Outcome{Kind: OutcomeSuccess, StatusCode: status, Body: v}, nil

	case http.StatusNoContent:
		return Outcome{Kind: OutcomeEmpty, StatusCode: status}, nil

	case http.StatusTooManyRequests:
		return Outcome{
			Kind:       OutcomeRateLimited,
			StatusCode: status,
			RetryAt:    parseRetryAfter(header.Get("Retry-After")),
		}, nil
	}

	out := Outcome{
		Kind:       OutcomeFailure,
		StatusCode: status,
		Message:    fmt.Sprintf("API request failed with status %d", status),
	}
	v, err := decodeJSON(body)
	if err != nil {
		if len(body) > 0 {
			out.Message = string(body)
		}
		return out, nil
	}
	out.Body = v
	if m, ok := v.(map[string]any); ok {
		if msg, ok := m["message"]; ok && msg != nil {
			if s, ok := msg.(string); ok {
				out.Message = s
			} else {
				out.Message = fmt.Sprint(msg)
			}
		}
	}
	return out, nil
}

// decodeJSON decodes a whole body, keeping numbers as json.Number so 64-bit
// AgilePlace IDs survive the round trip.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

// parseRetryAfter parses an HTTP-date Retry-After value. It returns the zero
// time when the value is empty or not a date.
func parseRetryAfter(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	for _, layout := range retryAfterLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}
	return time.Time{}
}

// retryAfterLayouts are the accepted HTTP-date forms; some servers omit the
// leading zero of the day.
var retryAfterLayouts = []string{
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// retryWait returns how long to wait until retryAt, clamped to [0, max].
func retryWait(retryAt, now time.Time, max time.Duration) time.Duration {
	d := retryAt.Sub(now)
	if d < 0 {
		return 0
	}
	if d > max {
		return max
	}
	return d
}
