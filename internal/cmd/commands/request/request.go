package request

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go"
	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagData string
}

func (c *Command) Synopsis() string {
	return "Send a raw API request"
}

func (c *Command) Help() string {
	return `Usage: agileplace request [options] METHOD PATH

  Sends a request to the API with rate limit retries and prints the JSON
  response. PATH is relative to the API root, e.g.

    agileplace request GET "/card?board=123&limit=10"
    agileplace request -data '{"title":"Renamed"}' PATCH /card/456` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("request", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.StringVar(&c.flagData, "data", "", "JSON request body")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Fail(err)
	}
	if f.NArg() != 2 {
		c.UI.Error("expected two arguments: METHOD PATH")
		return cli.RunResultHelp
	}

	req := &agileplace.Request{
		Method: strings.ToUpper(f.Arg(0)),
		Path:   f.Arg(1),
	}
	if c.flagData != "" {
		var body any
		if err := json.Unmarshal([]byte(c.flagData), &body); err != nil {
			return c.Fail(fmt.Errorf("invalid -data: %w", err))
		}
		req.Body = body
	}

	client, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}
	defer client.Close()

	res, err := client.Do(context.Background(), req)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
