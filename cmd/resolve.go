package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <expr>",
	Short: "Resolve a unit expression once, without caching",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: please provide a unit expression")
			os.Exit(1)
		}
		expr := strings.Join(args, " ")

		cfg, err := loadUnitConfig()
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		resolver, err := newUnitResolver(cfg)
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		info, err := resolver.Resolve(expr)
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		unitStyle.Printf("%s\n", expr)
		fmt.Printf("  exponents: %v\n  factor:    %g\n  offset:    %g\n", info.Exponents(), info.Factor, info.Offset)
	},
}
