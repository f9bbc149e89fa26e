// Command duim reports subdirectory disk usage as a bar chart.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/duim/internal/cli"
)

// Version is set at build time with -ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(os.Args[1:]...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
