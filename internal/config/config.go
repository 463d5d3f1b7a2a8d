// Package config provides configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"schema-profiler/internal/schema"
)

// Environment variables that override file-based configuration.
const (
	EnvProfile      = "SCHEMA_PROFILER_PROFILE"
	EnvInput        = "SCHEMA_PROFILER_INPUT"
	EnvOutput       = "SCHEMA_PROFILER_OUTPUT"
	EnvOutputFormat = "SCHEMA_PROFILER_OUTPUT_FORMAT"
	EnvReport       = "SCHEMA_PROFILER_REPORT"
	EnvStrict       = "SCHEMA_PROFILER_STRICT"
	EnvLogLevel     = "SCHEMA_PROFILER_LOG_LEVEL"
	EnvLogFormat    = "SCHEMA_PROFILER_LOG_FORMAT"
)

// ErrMissingPath is returned when a required file path is not configured.
var ErrMissingPath = errors.New("missing required path")

// Config is the root configuration structure.
type Config struct {
	Profile      string           `yaml:"profile"`
	Input        string           `yaml:"input"`
	Output       string           `yaml:"output"`
	OutputFormat string           `yaml:"output_format"` // "ecore", "yaml", or "" for by extension
	Report       string           `yaml:"report"`
	Strict       bool             `yaml:"strict"`
	Namespaces   NamespacesConfig `yaml:"namespaces"`
	Logging      LoggingConfig    `yaml:"logging"`
}

// NamespacesConfig overrides annotation sources. Empty values keep the defaults.
type NamespacesConfig struct {
	Slicing       string `yaml:"slicing"`
	Domain        string `yaml:"domain"`
	Documentation string `yaml:"documentation"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads configuration from a YAML file, then applies environment
// overrides and defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides applies SCHEMA_PROFILER_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvProfile); v != "" {
		cfg.Profile = v
	}
	if v := os.Getenv(EnvInput); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.OutputFormat = v
	}
	if v := os.Getenv(EnvReport); v != "" {
		cfg.Report = v
	}
	if v := os.Getenv(EnvStrict); v != "" {
		cfg.Strict = parseBool(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return strings.EqualFold(s, "yes") || strings.EqualFold(s, "on")
	}
	return b
}

func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Validate checks that the pipeline can run with this configuration.
func (c *Config) Validate() error {
	required := []struct{ name, value string }{
		{"profile", c.Profile},
		{"input", c.Input},
		{"output", c.Output},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingPath, r.name)
		}
	}

	if _, err := schema.ParseFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
