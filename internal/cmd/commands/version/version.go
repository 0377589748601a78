package version

import (
	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
	"github.com/jhigh1594/agileplace-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: agileplace version`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("agileplace " + version.Version)
	return 0
}
