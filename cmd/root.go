package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jci-public/numerics/internal/config"
	"github.com/jci-public/numerics/internal/system"
	"github.com/jci-public/numerics/internal/units"
)

var (
	cfgFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "numerics",
	Short: "numerics - a unit-of-measure conversion engine",
}

// Execute runs the root command; called from cmd/numerics/main.go.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "numerics.yaml", "unit-system configuration file")

	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cacheStatsCmd)
}

// configureSystem loads cfgFile and wires the package-level default
// system, for subcommands that resolve through the cache.
func configureSystem() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfgFile, err)
	}
	if err := system.ConfigureWithLogger(cfg, logger); err != nil {
		return fmt.Errorf("configuring unit system: %w", err)
	}
	return nil
}

// loadUnitConfig reads cfgFile without touching the package-level default
// system, for subcommands that resolve without caching.
func loadUnitConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newUnitResolver(cfg *config.Config) (*units.Resolver, error) {
	return units.NewResolver(cfg)
}

// resolveViaDefaultSystem resolves text through the package-level default
// system configured by configureSystem, so repeated conversions in one
// process reuse the cache.
func resolveViaDefaultSystem(text string) (units.Info, error) {
	return system.Create(text)
}
