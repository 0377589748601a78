package card

import (
	"context"
	"flag"
	"strings"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
	"github.com/jhigh1594/agileplace-go/tools"
)

type CreateCommand struct {
	*base.Command

	flagBoard       string
	flagLane        string
	flagTitle       string
	flagDescription string
	flagType        string
	flagPriority    string
	flagTags        string
	flagSize        int
}

func (c *CreateCommand) Synopsis() string {
	return "Create a card"
}

func (c *CreateCommand) Help() string {
	return `Usage: agileplace card create -board=ID -lane=ID -title=TITLE [options]` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("card create", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.StringVar(&c.flagBoard, "board", "", "Board ID")
	f.StringVar(&c.flagLane, "lane", "", "Lane ID")
	f.StringVar(&c.flagTitle, "title", "", "Card title")
	f.StringVar(&c.flagDescription, "description", "", "Card description")
	f.StringVar(&c.flagType, "type", "", "Card type ID")
	f.StringVar(&c.flagPriority, "priority", "", "One of low, normal, high, critical")
	f.StringVar(&c.flagTags, "tags", "", "Comma separated tags")
	f.IntVar(&c.flagSize, "size", -1, "Card size")
	return f
}

func (c *CreateCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail(err)
	}

	in := tools.CreateCardInput{
		BoardID:     c.flagBoard,
		LaneID:      c.flagLane,
		Title:       c.flagTitle,
		Description: c.flagDescription,
		TypeID:      c.flagType,
		Priority:    c.flagPriority,
	}
	if c.flagTags != "" {
		in.Tags = strings.Split(c.flagTags, ",")
	}
	if c.flagSize >= 0 {
		size := c.flagSize
		in.Size = &size
	}
	if err := in.Validate(); err != nil {
		return c.Fail(err)
	}

	svc, closeFn, err := c.Service()
	if err != nil {
		return c.Fail(err)
	}
	defer closeFn()

	res, err := svc.CreateCard(context.Background(), in)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}
