package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jci-public/numerics/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter unit-system configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			printError(err)
			os.Exit(1)
		}
		printSuccess("Configuration file created: %s", cfgFile)
	},
}

// initConfigurationFile writes a starter config with a small SI-adjacent
// unit set, grounded on cmd/init.go's initConfigurationFile shape (marshal
// a default struct with yaml.v3, write it out).
func initConfigurationFile(path string) error {
	if path == "" {
		path = "numerics.yaml"
	}

	cfg := &config.Config{
		BaseUnits: []string{"m", "kg", "s", "K"},
		Prefixes: map[string]map[string]float64{
			"si": {"milli": 0.001, "centi": 0.01, "kilo": 1000},
		},
		Units: map[string]string{
			"[si]in": "0.0254*m",
			"degC":   "K+273.15",
			"[si]g":  "0.001*kg",
			"N":      "kg*m/s^2",
			"J":      "N*m",
			"W":      "J/s",
		},
		SlidingExpiration:                 5 * time.Minute,
		HighMemoryPressureThreshold:       90,
		HighMemoryPressureClearPercentage: 50,
	}

	d, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling starter config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
