package whoami

import (
	"context"
	"flag"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagContext bool
}

func (c *Command) Synopsis() string {
	return "Show the user the API token belongs to"
}

func (c *Command) Help() string {
	return `Usage: agileplace whoami [options]

  Prints the authenticated user. With -context, prints the user's
  organization context instead.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("whoami", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.BoolVar(&c.flagContext, "context", false, "Show the user context")
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail(err)
	}
	svc, closeFn, err := c.Service()
	if err != nil {
		return c.Fail(err)
	}
	defer closeFn()

	ctx := context.Background()
	var res any
	if c.flagContext {
		res, err = svc.GetUserContext(ctx)
	} else {
		res, err = svc.GetCurrentUser(ctx)
	}
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
