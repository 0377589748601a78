package card

import (
	"context"
	"flag"

	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
)

type MoveCommand struct {
	*base.Command

	flagLane     string
	flagPosition int
}

func (c *MoveCommand) Synopsis() string {
	return "Move a card to another lane"
}

func (c *MoveCommand) Help() string {
	return `Usage: agileplace card move -lane=ID [options] CARD_ID` + c.Flags().Help()
}

func (c *MoveCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("card move", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.StringVar(&c.flagLane, "lane", "", "Target lane ID")
	f.IntVar(&c.flagPosition, "position", -1, "0-based position in the lane")
	return f
}

func (c *MoveCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Fail(err)
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: CARD_ID")
		return cli.RunResultHelp
	}

	var position *int
	if c.flagPosition >= 0 {
		p := c.flagPosition
		position = &p
	}

	svc, closeFn, err := c.Service()
	if err != nil {
		return c.Fail(err)
	}
	defer closeFn()

	res, err := svc.MoveCard(context.Background(), f.Arg(0), c.flagLane, position)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
