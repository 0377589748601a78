package boards

import (
	"context"
	"flag"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
	"github.com/jhigh1594/agileplace-go/tools"
)

type Command struct {
	*base.Command

	flagSearch   string
	flagLimit    int
	flagOffset   int
	flagArchived bool
}

func (c *Command) Synopsis() string {
	return "List boards"
}

func (c *Command) Help() string {
	return `Usage: agileplace boards [options]

  Lists the boards visible to the authenticated user.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("boards", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.StringVar(&c.flagSearch, "search", "", "Filter boards by title")
	f.IntVar(&c.flagLimit, "limit", 200, "Maximum number of boards")
	f.IntVar(&c.flagOffset, "offset", 0, "Number of boards to skip")
	f.BoolVar(&c.flagArchived, "archived", false, "List archived boards")
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

	boards, err := svc.ListBoards(context.Background(), tools.ListBoardsInput{
		Search:   c.flagSearch,
		Limit:    c.flagLimit,
		Offset:   c.flagOffset,
		Archived: c.flagArchived,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(boards)
}
