package main

import (
	"fmt"
	"os"

	"github.com/quantumauth-io/bridge-fees/cmd/bridge-cli/commands"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	root := commands.NewRootCommand(fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
