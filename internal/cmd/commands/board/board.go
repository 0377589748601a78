package board

import (
	"context"
	"flag"

	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagLanes bool
}

func (c *Command) Synopsis() string {
	return "Show a board"
}

func (c *Command) Help() string {
	return `Usage: agileplace board [options] BOARD_ID

  Prints a board with its lanes, card types and tags. With -lanes, prints
  only the lanes that can hold cards.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("board", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.BoolVar(&c.flagLanes, "lanes", false, "Only print the leaf lanes")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Fail(err)
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: BOARD_ID")
		return cli.RunResultHelp
	}

	svc, closeFn, err := c.Service()
	if err != nil {
		return c.Fail(err)
	}
	defer closeFn()

	ctx := context.Background()
	var res any
	if c.flagLanes {
		res, err = svc.GetLeafLanes(ctx, f.Arg(0))
	} else {
		res, err = svc.GetBoard(ctx, f.Arg(0))
	}
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
