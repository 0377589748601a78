package card

import (
	"context"
	"flag"

	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
	"github.com/jhigh1594/agileplace-go/tools"
)

type UpdateCommand struct {
	*base.Command

	flagSet base.FieldsFlag
}

func (c *UpdateCommand) Synopsis() string {
	return "Update card fields"
}

func (c *UpdateCommand) Help() string {
	return `Usage: agileplace card update [options] CARD_ID

  Updates the fields given with -set, e.g.

    agileplace card update -set title="New title" -set planned_finish=2024-06-01 123` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("card update", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	c.flagSet = nil
	f.Var(&c.flagSet, "set", "Field to update as key=value; repeatable")
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Fail(err)
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: CARD_ID")
		return cli.RunResultHelp
	}

	svc, closeFn, err := c.Service()
	if err != nil {
		return c.Fail(err)
	}
	defer closeFn()

	res, err := svc.UpdateCard(context.Background(), f.Arg(0), tools.Fields(c.flagSet))
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
