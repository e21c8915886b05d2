// Command numerics is the CLI entrypoint for the unit-of-measure resolver.
package main

import (
	"fmt"
	"os"

	"github.com/jci-public/numerics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
