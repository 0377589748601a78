package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/jhigh1594/agileplace-go"
	"github.com/jhigh1594/agileplace-go/config"
	"github.com/jhigh1594/agileplace-go/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	return run(args, ui)
}

func run(args []string, ui cli.Ui, opts ...agileplace.Option) int {
	cliName := "agileplace"
	if len(args) > 0 {
		cliName = args[0]
		args = args[1:]
	}

	level := hclog.Warn
	if val, ok := os.LookupEnv(config.EnvLogLevel); ok {
		if l := hclog.LevelFromString(val); l != hclog.NoLevel {
			level = l
		}
	}
	log := hclog.New(&hclog.LoggerOptions{
		Name:   cliName,
		Level:  level,
		Output: os.Stderr,
	})

	if len(args) == 1 && (args[0] == "-version" || args[0] == "-v") {
		args = []string{"version"}
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args,
		Version:  version.Version,
		Commands: commands(log, ui, opts...),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}
