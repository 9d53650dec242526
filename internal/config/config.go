// =============================================================================
// Deposition Species Injector - Configuration Module
// =============================================================================
//
// This module loads the tool configuration (depspec.yaml). Every setting has
// a default, so the file is optional; command-line flags override it.
//
// CONFIGURATION FILE:
//   species_database: species_database.yml   # used when only the XML is given
//   aerosol_preset: false                     # seed aerosol lists from MAM4
//   aerosol_catalogue: ""                     # CSV/TSV/XLSX replacing MAM4
//   aerosol_catalogue_sheet: ""               # XLSX sheet, first if empty
//   strict_database: false                    # abort on database parse errors
//   log_level: info                           # debug, info, warn, error
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/depspec/internal/classifier"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultConfigFile is read when --config is not given. A missing default
	// file is not an error.
	DefaultConfigFile = "depspec.yaml"

	// DefaultSpeciesDatabase is the database path used when the command line
	// only names the XML file.
	DefaultSpeciesDatabase = "species_database.yml"

	// DefaultLogLevel is the zap level name used when none is configured.
	DefaultLogLevel = "info"
)

// validLogLevels lists the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the tool configuration.
type Config struct {
	// SpeciesDatabase is the path to species_database.yml.
	// Default: "species_database.yml"
	SpeciesDatabase string `yaml:"species_database"`

	// AerosolPreset replaces the database-derived aerosol lists with the
	// built-in MAM4 catalogue.
	// Default: false
	AerosolPreset bool `yaml:"aerosol_preset"`

	// AerosolCatalogue is an optional CSV, TSV or XLSX file of aerosol
	// species names used by the preset instead of the MAM4 catalogue.
	// Default: "" (built-in MAM4 catalogue)
	AerosolCatalogue string `yaml:"aerosol_catalogue"`

	// AerosolCatalogueSheet selects the sheet of an XLSX catalogue.
	// Default: "" (first sheet)
	AerosolCatalogueSheet string `yaml:"aerosol_catalogue_sheet"`

	// StrictDatabase aborts the run when the species database cannot be
	// parsed, instead of writing empty lists.
	// Default: false
	StrictDatabase bool `yaml:"strict_database"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ClassifierOptions derives classifier options from the configuration.
func (c *Config) ClassifierOptions() classifier.Options {
	return classifier.Options{AerosolPreset: c.AerosolPreset}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: When false, a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or fails validation.
func Load(configPath string, required bool) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.SpeciesDatabase == "" {
		cfg.SpeciesDatabase = DefaultSpeciesDatabase
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// validate checks option values.
func validate(cfg *Config) error {
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
