package card

import (
	"context"
	"flag"

	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show and change cards"
}

func (c *Command) Help() string {
	return `Usage: agileplace card <subcommand> [options] [args]

  This command groups subcommands for working with a single card.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type ShowCommand struct {
	*base.Command
}

func (c *ShowCommand) Synopsis() string {
	return "Show a card"
}

func (c *ShowCommand) Help() string {
	return `Usage: agileplace card show [options] CARD_ID` + c.Flags().Help()
}

func (c *ShowCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("card show", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	return f
}

func (c *ShowCommand) Run(args []string) int {
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

	res, err := svc.GetCard(context.Background(), f.Arg(0))
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
