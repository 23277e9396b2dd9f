// Package config provides configuration management with validation.
//
// All inputs are validated at load time (fail-fast) so the CLI never runs
// with a half-valid configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables.
const (
	EnvDefsPath = "FEATSTATE_DEFS_PATH"
	EnvLogLevel = "FEATSTATE_LOG_LEVEL"
	EnvStrict   = "FEATSTATE_STRICT"
)

// Defaults.
const (
	DefaultLogLevel = "info"
	DefaultStrict   = true
)

// Configuration errors.
var (
	ErrInvalidLogLevel = errors.New("FEATSTATE_LOG_LEVEL must be debug, info, warn, or error")
	ErrInvalidStrict   = errors.New("FEATSTATE_STRICT must be a boolean")
)

// validLogLevels enumerates accepted log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config holds CLI configuration loaded from environment variables.
type Config struct {
	// DefsPath is the definitions file path. Optional: command-line flags
	// take precedence and may supply it instead.
	DefsPath string
	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string
	// Strict makes reference-integrity findings fatal during planning.
	Strict bool
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DefsPath: os.Getenv(EnvDefsPath),
		LogLevel: getEnvOrDefault(EnvLogLevel, DefaultLogLevel),
		Strict:   DefaultStrict,
	}

	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStrict, v)
		}
		cfg.Strict = strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// getEnvOrDefault returns the environment value or a default when unset.
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
