package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go"
	"github.com/jhigh1594/agileplace-go/internal/cmd/base"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/board"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/boards"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/card"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/cards"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/request"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/version"
	"github.com/jhigh1594/agileplace-go/internal/cmd/commands/whoami"
)

// commands builds the command table. opts are passed to every API client the
// commands create.
func commands(log hclog.Logger, ui cli.Ui, opts ...agileplace.Option) map[string]cli.CommandFactory {
	b := func() *base.Command {
		c := base.NewCommand(log, ui)
		c.Options = opts
		return c
	}

	return map[string]cli.CommandFactory{
		"boards": func() (cli.Command, error) {
			return &boards.Command{Command: b()}, nil
		},
		"board": func() (cli.Command, error) {
			return &board.Command{Command: b()}, nil
		},
		"cards": func() (cli.Command, error) {
			return &cards.Command{Command: b()}, nil
		},
		"card": func() (cli.Command, error) {
			return &card.Command{Command: b()}, nil
		},
		"card show": func() (cli.Command, error) {
			return &card.ShowCommand{Command: b()}, nil
		},
		"card create": func() (cli.Command, error) {
			return &card.CreateCommand{Command: b()}, nil
		},
		"card update": func() (cli.Command, error) {
			return &card.UpdateCommand{Command: b()}, nil
		},
		"card move": func() (cli.Command, error) {
			return &card.MoveCommand{Command: b()}, nil
		},
		"request": func() (cli.Command, error) {
			return &request.Command{Command: b()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b()}, nil
		},
		"whoami": func() (cli.Command, error) {
			return &whoami.Command{Command: b()}, nil
		},
	}
}
