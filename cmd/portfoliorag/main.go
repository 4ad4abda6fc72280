package main

import (
	"fmt"
	"os"

	"portfoliorag/cmd/portfoliorag/commands"
)

// Version information (set at build time with -ldflags).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
