// Package config loads agileplace settings from an optional HCL file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/jhigh1594/agileplace-go"
)

// EnvLogLevel selects the log level when the file does not set one.
const EnvLogLevel = "LOG_LEVEL"

// Config is the file form of the client settings, e.g.
//
//	domain      = "mycompany.leankit.com"
//	api_token   = "..."
//	timeout     = "30s"
//	max_retries = 5
//	log_level   = "debug"
//
//	rate_limit {
//	  rps   = 2
//	  burst = 4
//	}
type Config struct {
	Domain     string     `hcl:"domain,optional"`
	APIToken   string     `hcl:"api_token,optional"`
	Timeout    string     `hcl:"timeout,optional"`
	MaxRetries int        `hcl:"max_retries,optional"`
	LogLevel   string     `hcl:"log_level,optional"`
	RateLimit  *RateLimit `hcl:"rate_limit,block"`
}

// RateLimit configures the client-side token bucket.
type RateLimit struct {
	RPS   float64 `hcl:"rps"`
	Burst int     `hcl:"burst,optional"`
}

// Load reads the HCL file at path, when path is not empty, and fills unset
// domain, token and log level from the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if val, ok := lookup(agileplace.EnvDomain); ok && c.Domain == "" {
		c.Domain = val
	}
	if val, ok := lookup(agileplace.EnvAPIToken); ok && c.APIToken == "" {
		c.APIToken = val
	}
	if val, ok := lookup(EnvLogLevel); ok && c.LogLevel == "" {
		c.LogLevel = val
	}
}

// Override replaces the file values with explicit ones, such as command-line
// flags. Empty arguments leave the current value in place.
func (c *Config) Override(domain, token string) {
	if domain != "" {
		c.Domain = domain
	}
	if token != "" {
		c.APIToken = token
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.By(isDuration)),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.By(isLogLevel)),
		validation.Field(&c.RateLimit),
	)
}

func (r RateLimit) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RPS, validation.Min(0.0)),
		validation.Field(&r.Burst, validation.Min(0)),
	)
}

func isDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 30s")
	}
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func isLogLevel(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if hclog.LevelFromString(s) == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}

// Credentials resolves the configured domain and token.
func (c *Config) Credentials() (*agileplace.Credentials, error) {
	return agileplace.ResolveCredentials(c.Domain, c.APIToken, nil)
}

// Level returns the configured log level, Info when unset.
func (c *Config) Level() hclog.Level {
	if l := hclog.LevelFromString(strings.TrimSpace(c.LogLevel)); l != hclog.NoLevel {
		return l
	}
	return hclog.Info
}

// ClientOptions converts the settings into client options. The logger, when
// not nil, is passed through.
func (c *Config) ClientOptions(logger hclog.Logger) []agileplace.Option {
	var opts []agileplace.Option
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, agileplace.WithTimeout(d))
		}
	}
	if c.MaxRetries > 0 {
		opts = append(opts, agileplace.WithRetry(c.MaxRetries, agileplace.DefaultInitialBackoff))
	}
	if c.RateLimit != nil && c.RateLimit.RPS > 0 {
		opts = append(opts, agileplace.WithRateLimit(c.RateLimit.RPS, c.RateLimit.Burst))
	}
	if logger != nil {
		opts = append(opts, agileplace.WithLogger(logger))
	}
	return opts
}
