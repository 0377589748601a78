package agileplace

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Environment keys consulted when no explicit value is given.
const (
	EnvDomain   = "AGILEPLACE_DOMAIN"
	EnvAPIToken = "AGILEPLACE_API_TOKEN"
)

// Credentials holds the resolved AgilePlace domain (host only, no scheme) and
// the bearer token used to authenticate every request.
type Credentials struct {
	Domain string
	Token  string
}

// NewCredentials resolves credentials from the explicit arguments, falling
// back to the AGILEPLACE_DOMAIN and AGILEPLACE_API_TOKEN environment variables.
func NewCredentials(domain, token string) (*Credentials, error) {
	return ResolveCredentials(domain, token, os.Getenv)
}

// ResolveCredentials is NewCredentials with a caller-supplied lookup for the
// fallback keys. A nil lookup disables the fallback.
func ResolveCredentials(domain, token string, lookup func(key string) string) (*Credentials, error) {
	if lookup == nil {
		lookup = func(string) string { return "" }
	}

	if domain == "" {
		domain = lookup(EnvDomain)
	}
	if domain == "" {
		return nil, &CredentialError{Message: fmt.Sprintf(
			"%s environment variable is required. "+
				"Set it to your AgilePlace domain (e.g., 'mycompany.leankit.com')", EnvDomain)}
	}

	if token == "" {
		token = lookup(EnvAPIToken)
	}
	if token == "" {
		return nil, &CredentialError{Message: fmt.Sprintf(
			"%s environment variable is required. "+
				"Create a token at: https://%s/account/api", EnvAPIToken, domain)}
	}

	return &Credentials{
		Domain: stripScheme(domain),
		Token:  token,
	}, nil
}

// stripScheme removes a single leading https:// or http:// prefix.
func stripScheme(domain string) string {
	if d, ok := strings.CutPrefix(domain, "https://"); ok {
		return d
	}
	if d, ok := strings.CutPrefix(domain, "http://"); ok {
		return d
	}
	return domain
}

// BaseURL returns the API root for the domain.
func (c *Credentials) BaseURL() string {
	return "https://" + c.Domain + "/io"
}

// Headers returns a fresh copy of the authentication and content headers.
func (c *Credentials) Headers() http.Header {
	h := make(http.Header, 3)
	h.Set("Authorization", "Bearer "+c.Token)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	return h
}

// Valid reports whether both domain and token are still set.
func (c *Credentials) Valid() bool {
	return c != nil && c.Domain != "" && c.Token != ""
}

func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{Domain: %q, Token: <redacted>}", c.Domain)
}
