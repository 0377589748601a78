package main

import (
	"os"

	"github.com/jhigh1594/agileplace-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
