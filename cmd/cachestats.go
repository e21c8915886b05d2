package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jci-public/numerics/internal/system"
)

var cacheStatsCmd = &cobra.Command{
	Use:   "cache-stats",
	Short: "Print the default unit system's current cache entry count",
	Run: func(cmd *cobra.Command, args []string) {
		if err := configureSystem(); err != nil {
			printError(err)
			os.Exit(1)
		}
		s := system.Default()
		hintStyle.Printf("cache entries: %d\n", s.CacheLen())
		hintStyle.Printf("reconfigures:  %d\n", s.ReconfigureCount())
		hintStyle.Printf("expiry ticks:  %d\n", s.TickCount())
	},
}
