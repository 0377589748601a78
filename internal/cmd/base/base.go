package base

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go"
	"github.com/jhigh1594/agileplace-go/config"
	"github.com/jhigh1594/agileplace-go/tools"
)

// Command is embedded by every subcommand. It carries the logger, the UI and
// the connection flags shared by all commands.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Options are appended to the client options built from config. Tests use
	// them to point the client at a local server.
	Options []agileplace.Option

	flagConfig string
	flagDomain string
	flagToken  string
}

func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{Log: log, UI: ui}
}

// ConnectionFlags registers -config, -domain and -token on f.
func (c *Command) ConnectionFlags(f *flag.FlagSet) {
	f.StringVar(&c.flagConfig, "config", "",
		"Path to an HCL config file")
	f.StringVar(&c.flagDomain, "domain", "",
		fmt.Sprintf("[%s] AgilePlace domain, e.g. mycompany.leankit.com", agileplace.EnvDomain))
	f.StringVar(&c.flagToken, "token", "",
		fmt.Sprintf("[%s] AgilePlace API token", agileplace.EnvAPIToken))
}

// Client loads the configuration and builds an API client. Flags take
// precedence over the config file, which takes precedence over the
// environment.
func (c *Command) Client() (*agileplace.Client, error) {
	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		return nil, err
	}
	cfg.Override(c.flagDomain, c.flagToken)

	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}
	if cfg.LogLevel != "" {
		c.Log.SetLevel(cfg.Level())
	}

	opts := append(cfg.ClientOptions(c.Log), c.Options...)
	c.Log.Debug("client configured", "domain", creds.Domain)
	return agileplace.New(creds, opts...), nil
}

// Service is Client wrapped in the per-entity operations. The returned close
// function releases the client's connections.
func (c *Command) Service() (*tools.Service, func(), error) {
	client, err := c.Client()
	if err != nil {
		return nil, nil, err
	}
	return tools.New(client), client.Close, nil
}

// Output writes v to the UI as indented JSON.
func (c *Command) Output(v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}
	c.UI.Output(string(b))
	return 0
}

// Fail reports err and returns the exit code for it.
func (c *Command) Fail(err error) int {
	c.UI.Error(err.Error())
	return 1
}
