package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "monarchize.yaml"

// DefaultPortalLabel is the account label used for portal exports when no
// config or flag supplies one. The portal CSV carries no card number, so
// the label cannot be derived from the data.
const DefaultPortalLabel = "Rogers Mastercard"

// Config represents the top-level monarchize.yaml configuration.
type Config struct {
	Account AccountConfig `yaml:"account"`
	Filter  FilterConfig  `yaml:"filter,omitempty"`
}

// AccountConfig labels output accounts for exports that carry no card
// number of their own.
type AccountConfig struct {
	PortalLabel string `yaml:"portal_label"`
}

// FilterConfig holds default date bounds, overridable per run. Dates are
// "YYYY-MM-DD".
type FilterConfig struct {
	FromDate string `yaml:"from_date,omitempty"`
	ToDate   string `yaml:"to_date,omitempty"`
}

// Load reads a monarchize.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default(portalLabel string) *Config {
	if portalLabel == "" {
		portalLabel = DefaultPortalLabel
	}
	return &Config{
		Account: AccountConfig{PortalLabel: portalLabel},
	}
}
