// Command cbamcalc computes installation greenhouse-gas emissions,
// product carbon footprints, and carbon-border cost projections.
package main

import (
	"fmt"
	"os"

	"github.com/carbonforge/cbamcalc/internal/cli"
	"github.com/carbonforge/cbamcalc/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCmd(version.GetVersion())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
