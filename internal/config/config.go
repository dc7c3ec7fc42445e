// Package config loads the tool configuration: a global config file
// with an optional project-local overlay shallow-merged on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/carbonforge/cbamcalc/internal/logging"
)

// OutputConfig controls the default CLI output format.
type OutputConfig struct {
	// Format is "table" or "json"; empty picks by terminal.
	Format string `yaml:"format"`
}

// RefdataConfig points at an alternate reference pack.
type RefdataConfig struct {
	// Pack is the path to a YAML reference pack; empty uses built-ins.
	Pack string `yaml:"pack"`
}

// AllocationConfig carries the default allocation settings.
type AllocationConfig struct {
	TreatResidueAsWaste bool `yaml:"treat_residue_as_waste"`
}

// Config is the full tool configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Logging    logging.Config   `yaml:"logging"`
	Refdata    RefdataConfig    `yaml:"refdata"`
	Allocation AllocationConfig `yaml:"allocation"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Logging: logging.Config{Level: "info", Format: "console"},
	}
}

// OverlayFileName is the project-local config overlay looked up in the
// working directory and shallow-merged onto the global config.
const OverlayFileName = "cbamcalc.yaml"

// ProjectOverlayPath returns the project-local overlay file in dir, or
// "" when dir carries none.
func ProjectOverlayPath(dir string) string {
	path := filepath.Join(dir, OverlayFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// DefaultPath returns the global config file location,
// $XDG_CONFIG_HOME/cbamcalc/config.yaml or the home-dir equivalent.
func DefaultPath() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "cbamcalc", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cbamcalc", "config.yaml")
}

// Load reads the global config file, falling back to defaults when the
// file does not exist. A config file that exists but cannot be parsed
// is an error; silently ignoring it would mask typos.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
