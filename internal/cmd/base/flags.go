package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

// FlagSet wraps a flag.FlagSet to render flag defaults for command help.
type FlagSet struct {
	*flag.FlagSet
}

func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(new(bytes.Buffer))
	return &FlagSet{FlagSet: f}
}

// Help returns the flag defaults formatted for a command's Help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "  -%s", fl.Name)
		if name, _ := flag.UnquoteUsage(fl); name != "" {
			fmt.Fprintf(&b, "=<%s>", name)
		}
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, " (default %s)", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n    %s\n\n", fl.Usage)
	})
	return strings.TrimRight(b.String(), "\n")
}
