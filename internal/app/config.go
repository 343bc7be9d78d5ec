package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatSBS  = "sbs"  // canonical BaseStation lines
	FormatJSON = "json" // one JSON object per line
)

// Default configuration constants
const (
	DefaultInput  = "-" // stdin
	DefaultOutput = "-" // stdout
	DefaultFormat = FormatSBS
)

// Config holds application configuration
type Config struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Format       string `yaml:"format"`
	LogDir       string `yaml:"log_dir"`
	LogRotateUTC bool   `yaml:"log_rotate_utc"`
	RetainDays   int    `yaml:"retain_days"`
	Strict       bool   `yaml:"strict"`
	SkipUnknown  bool   `yaml:"skip_unknown"`
	Verbose      bool   `yaml:"verbose"`
	ShowVersion  bool   `yaml:"-"`
}

// DefaultConfig returns the configuration used when no flag or file sets a value.
func DefaultConfig() Config {
	return Config{
		Input:        DefaultInput,
		Output:       DefaultOutput,
		Format:       DefaultFormat,
		LogRotateUTC: true,
	}
}

// LoadConfig overlays the YAML file at path onto config. Keys missing from
// the file keep their current value.
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config.Validate()
}

// Validate checks values that cannot be caught by flag parsing.
func (c Config) Validate() error {
	switch c.Format {
	case FormatSBS, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if c.RetainDays < 0 {
		return fmt.Errorf("retain_days must not be negative")
	}
	return nil
}
