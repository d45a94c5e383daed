// Command assessment-forge is the CLI entry point: "serve" runs the HTTP
// API, "generate" runs a single pipeline request against stdin/flags and
// prints the resulting assessment to stdout.
package main

import (
	"fmt"
	"os"

	"assessment-forge/cmd/assessment-forge/commands"
)

func main() {
	root := commands.NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(commands.ExitCodeFor(err))
	}
}
