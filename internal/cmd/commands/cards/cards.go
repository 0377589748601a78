package cards

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
	"github.com/jhigh1594/agileplace-go/tools"
)

type Command struct {
	*base.Command

	flagBoard  string
	flagSince  string
	flagOnly   string
	flagLimit  int
	flagOffset int
}

func (c *Command) Synopsis() string {
	return "List cards"
}

func (c *Command) Help() string {
	return `Usage: agileplace cards [options]

  Lists cards, optionally for one board and only those modified since a
  given time. -since accepts most date formats, e.g. 2024-03-01,
  "March 1 2024" or 2024-03-01T09:00:00Z.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("cards", flag.ContinueOnError))
	c.ConnectionFlags(f.FlagSet)
	f.StringVar(&c.flagBoard, "board", "", "Board ID")
	f.StringVar(&c.flagSince, "since", "", "Only cards modified after this time")
	f.StringVar(&c.flagOnly, "only", "", "Comma separated fields to return, e.g. id,title")
	f.IntVar(&c.flagLimit, "limit", 200, "Maximum number of cards")
	f.IntVar(&c.flagOffset, "offset", 0, "Number of cards to skip")
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail(err)
	}

	in := tools.ListCardsInput{
		BoardID: c.flagBoard,
		Limit:   c.flagLimit,
		Offset:  c.flagOffset,
	}
	if c.flagSince != "" {
		since, err := ParseSince(c.flagSince)
		if err != nil {
			return c.Fail(err)
		}
		in.Since = since
	}
	if c.flagOnly != "" {
		in.Only = strings.Split(c.flagOnly, ",")
	}

	svc, closeFn, err := c.Service()
	if err != nil {
		return c.Fail(err)
	}
	defer closeFn()

	res, err := svc.ListCards(context.Background(), in)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(res)
}

// ParseSince parses a free-form date in the local time zone.
func ParseSince(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -since value %q: %w", s, err)
	}
	return t, nil
}
