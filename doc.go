// Package agileplace provides an HTTP client for the AgilePlace (LeanKit) REST
// API with bearer-token authentication and rate-limit aware retries.
//
// It wraps the standard net/http client and adds:
//   - Credential resolution from explicit values or AGILEPLACE_* environment variables
//   - Response classification into success, empty, rate-limited and failure outcomes
//   - Retry on HTTP 429 using the Retry-After date or exponential backoff
//   - Typed errors: CredentialError, APIError and RateLimitError
//   - Optional proactive rate limiting via a token bucket (golang.org/x/time/rate)
//   - Atomic stats tracking and structured logging through go-hclog
//
// Configuration uses the functional options pattern:
//
//	creds, err := agileplace.NewCredentials("", "") // from the environment
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := agileplace.New(creds,
//	    agileplace.WithRetry(3, 2*time.Second),
//	    agileplace.WithLogger(hclog.Default()),
//	)
//	defer client.Close()
//
//	board, err := client.Get(ctx, "/board/123", nil)
//
// Per-entity operations (boards, cards, connections, dependencies, bulk
// updates, users and teams) live in the tools subpackage.
package agileplace
