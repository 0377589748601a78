// Package tools implements the per-entity AgilePlace operations (boards,
// cards, connections, dependencies, bulk updates, users and teams) on top of
// an agileplace.Client.
//
// Each operation validates its input, shapes the query and JSON payload the
// API expects, and returns the decoded response unchanged, or the named
// sub-collection of it for listing operations.
package tools

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jhigh1594/agileplace-go"
)

// Requester is the HTTP surface the operations need. *agileplace.Client
// implements it.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
	Patch(ctx context.Context, path string, body any) (any, error)
	Put(ctx context.Context, path string, body any) (any, error)
	Delete(ctx context.Context, path string, body any) (any, error)
}

var _ Requester = (*agileplace.Client)(nil)

// Service groups every AgilePlace operation over a single Requester.
type Service struct {
	api Requester
}

// New returns a Service that sends its requests through api.
func New(api Requester) *Service {
	return &Service{api: api}
}

// listField returns body[key] as a slice, or an empty slice when the body is
// not an object or the key is missing.
func listField(body any, key string) []any {
	m, ok := body.(map[string]any)
	if !ok {
		return []any{}
	}
	if l, ok := m[key].([]any); ok {
		return l
	}
	return []any{}
}

// page builds the limit/offset query shared by the paginated endpoints.
func page(limit, offset, defaultLimit int) url.Values {
	if limit <= 0 {
		limit = defaultLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// requireIDs validates that every named ID is present.
func requireIDs(ids map[string]string) error {
	errs := validation.Errors{}
	for name, v := range ids {
		errs[name] = validation.Validate(v, validation.Required)
	}
	return errs.Filter()
}

// seg escapes an ID for use as a path segment.
func seg(id string) string {
	return url.PathEscape(id)
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
