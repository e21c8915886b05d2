// Package config loads the unit-system configuration: base units, prefix
// families, unit definitions, and the cache's expiration parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full input to building a unit resolver plus its cache.
// JSON is the canonical on-disk format; YAML is accepted too, for a
// human-editable alternative alongside the machine-generated one.
type Config struct {
	// Prefixes maps a prefix family name (e.g. "si") to its prefix ->
	// scale-factor table (e.g. "milli" -> 0.001).
	Prefixes map[string]map[string]float64 `json:"prefixes" yaml:"prefixes"`

	// BaseUnits is the ordered list of base-unit names; its length
	// defines the dimensionality D of every exponent vector.
	BaseUnits []string `json:"baseUnits" yaml:"baseUnits"`

	// Units maps a comma-separated, optionally family-tagged name list
	// (e.g. "[si]m" or "in,inch") to the expression that defines it.
	Units map[string]string `json:"units" yaml:"units"`

	// SlidingExpiration is how long a cache entry may go untouched
	// before it becomes eligible for eviction.
	SlidingExpiration time.Duration `json:"slidingExpiration" yaml:"slidingExpiration"`

	// HighMemoryPressureThreshold, in percent, is the pressure level at
	// or above which ExpirationTick performs bulk eviction.
	HighMemoryPressureThreshold int `json:"highMemoryPressureThreshold" yaml:"highMemoryPressureThreshold"`

	// HighMemoryPressureClearPercentage is the fraction (in percent) of
	// surviving entries evicted, coldest first, during a high-pressure
	// tick.
	HighMemoryPressureClearPercentage int `json:"highMemoryPressureClearPercentage" yaml:"highMemoryPressureClearPercentage"`
}

const (
	defaultSlidingExpiration                 = 5 * time.Minute
	defaultHighMemoryPressureThreshold       = 90
	defaultHighMemoryPressureClearPercentage = 50
)

// jsonConfig lets SlidingExpiration round-trip through JSON as a duration
// string ("5m") rather than a raw integer count of nanoseconds, matching
// how the value is written by hand in a config file.
type jsonConfig struct {
	Prefixes                          map[string]map[string]float64 `json:"prefixes"`
	BaseUnits                         []string                      `json:"baseUnits"`
	Units                             map[string]string             `json:"units"`
	SlidingExpiration                 string                        `json:"slidingExpiration"`
	HighMemoryPressureThreshold       int                           `json:"highMemoryPressureThreshold"`
	HighMemoryPressureClearPercentage int                           `json:"highMemoryPressureClearPercentage"`
}

// Load reads a configuration file, dispatching on extension: ".json" uses
// encoding/json and ".yml"/".yaml" uses gopkg.in/yaml.v3, each decoding
// slidingExpiration as a duration string ("5m") parsed by
// time.ParseDuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		cfg, err = loadJSON(data)
	case ".yml", ".yaml":
		cfg, err = loadYAML(data)
	default:
		return nil, fmt.Errorf("config: unsupported extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func loadJSON(data []byte) (*Config, error) {
	var raw jsonConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cfg := &Config{
		Prefixes:                          raw.Prefixes,
		BaseUnits:                         raw.BaseUnits,
		Units:                             raw.Units,
		HighMemoryPressureThreshold:       raw.HighMemoryPressureThreshold,
		HighMemoryPressureClearPercentage: raw.HighMemoryPressureClearPercentage,
	}
	if raw.SlidingExpiration != "" {
		d, err := time.ParseDuration(raw.SlidingExpiration)
		if err != nil {
			return nil, fmt.Errorf("slidingExpiration: %w", err)
		}
		cfg.SlidingExpiration = d
	}
	return cfg, nil
}

// yamlConfig mirrors jsonConfig: SlidingExpiration is read as a string
// and parsed with time.ParseDuration, the same rule the JSON path uses.
type yamlConfig struct {
	Prefixes                          map[string]map[string]float64 `yaml:"prefixes"`
	BaseUnits                         []string                      `yaml:"baseUnits"`
	Units                             map[string]string             `yaml:"units"`
	SlidingExpiration                 string                        `yaml:"slidingExpiration"`
	HighMemoryPressureThreshold       int                           `yaml:"highMemoryPressureThreshold"`
	HighMemoryPressureClearPercentage int                           `yaml:"highMemoryPressureClearPercentage"`
}

func loadYAML(data []byte) (*Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cfg := &Config{
		Prefixes:                          raw.Prefixes,
		BaseUnits:                         raw.BaseUnits,
		Units:                             raw.Units,
		HighMemoryPressureThreshold:       raw.HighMemoryPressureThreshold,
		HighMemoryPressureClearPercentage: raw.HighMemoryPressureClearPercentage,
	}
	if raw.SlidingExpiration != "" {
		d, err := time.ParseDuration(raw.SlidingExpiration)
		if err != nil {
			return nil, fmt.Errorf("slidingExpiration: %w", err)
		}
		cfg.SlidingExpiration = d
	}
	return cfg, nil
}

// MarshalYAML renders SlidingExpiration back to a human string ("5m")
// instead of a raw nanosecond count, so `numerics init` writes a config a
// person can actually edit by hand.
func (c *Config) MarshalYAML() (any, error) {
	return yamlConfig{
		Prefixes:                          c.Prefixes,
		BaseUnits:                         c.BaseUnits,
		Units:                             c.Units,
		SlidingExpiration:                 c.SlidingExpiration.String(),
		HighMemoryPressureThreshold:       c.HighMemoryPressureThreshold,
		HighMemoryPressureClearPercentage: c.HighMemoryPressureClearPercentage,
	}, nil
}

func (c *Config) applyDefaults() {
	if c.SlidingExpiration <= 0 {
		c.SlidingExpiration = defaultSlidingExpiration
	}
	if c.HighMemoryPressureThreshold <= 0 {
		c.HighMemoryPressureThreshold = defaultHighMemoryPressureThreshold
	}
	if c.HighMemoryPressureClearPercentage <= 0 {
		c.HighMemoryPressureClearPercentage = defaultHighMemoryPressureClearPercentage
	}
}

// Validate reports structural problems that would make dictionary
// construction fail deterministically, before any resolution is attempted.
func (c *Config) Validate() error {
	if len(c.BaseUnits) == 0 {
		return fmt.Errorf("config: baseUnits must be non-empty")
	}
	seen := make(map[string]bool, len(c.BaseUnits))
	for _, b := range c.BaseUnits {
		if b == "" {
			return fmt.Errorf("config: baseUnits contains an empty name")
		}
		if seen[b] {
			return fmt.Errorf("config: duplicate base unit %q", b)
		}
		seen[b] = true
	}
	if c.HighMemoryPressureThreshold < 0 || c.HighMemoryPressureThreshold > 100 {
		return fmt.Errorf("config: highMemoryPressureThreshold must be in 0..100")
	}
	if c.HighMemoryPressureClearPercentage < 0 || c.HighMemoryPressureClearPercentage > 100 {
		return fmt.Errorf("config: highMemoryPressureClearPercentage must be in 0..100")
	}
	return nil
}
