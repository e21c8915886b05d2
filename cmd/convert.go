package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jci-public/numerics/internal/units"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <fromExpr> <toExpr>",
	Short: "Convert a value from one unit expression to another",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			printError(fmt.Errorf("invalid amount %q: %w", args[0], err))
			os.Exit(1)
		}

		if err := configureSystem(); err != nil {
			printError(err)
			os.Exit(1)
		}
		from, err := resolveViaDefaultSystem(args[1])
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		to, err := resolveViaDefaultSystem(args[2])
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		factor, offset, err := from.ConversionTo(&to)
		if err != nil {
			if isIncommensurable(err) {
				printError(fmt.Errorf("cannot convert %q to %q: incommensurable units", args[1], args[2]))
			} else {
				printError(err)
			}
			os.Exit(1)
		}

		printSuccess("%g %s = %g %s", amount, args[1], amount*factor+offset, args[2])
	},
}

func isIncommensurable(err error) bool {
	return errors.Is(err, units.ErrIncommensurable)
}
