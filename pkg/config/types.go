// Package config provides configuration management for onchange.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Command-line flags (highest priority, applied by the caller)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("debounce: %s\n", cfg.Watch.Debounce)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - Watch.Debounce must be > 0
// - Watch.CircuitBreakerThreshold must be > 0
// - History.MaxRecords must be > 0
// - History.DBPath must be set when History.Enabled is true.
type Config struct {
	// Watch settings
	Watch WatchConfig `yaml:"watch"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// History settings
	History HistoryConfig `yaml:"history"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// WatchConfig contains file watching settings.
type WatchConfig struct {
	// Quiet period after the last change before the command runs
	Debounce time.Duration `yaml:"debounce"`

	// Substitute the changed file rather than its watched root for {}
	Recursive bool `yaml:"recursive"`

	// Consecutive notification errors tolerated before giving up
	CircuitBreakerThreshold int `yaml:"circuit_breaker_threshold"`
}

// DisplayConfig contains terminal settings.
type DisplayConfig struct {
	// Switch to the alternate screen while watching
	AltScreen bool `yaml:"alt_screen"`

	// Style the run header
	Color bool `yaml:"color"`
}

// HistoryConfig contains run history settings.
type HistoryConfig struct {
	// Record every run in the history database
	Enabled bool `yaml:"enabled"`

	// Path to the BoltDB database file
	DBPath string `yaml:"db_path"`

	// Number of runs kept; older runs are pruned
	MaxRecords int `yaml:"max_records"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, discard, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Thread-safety: This method is read-only and thread-safe.
func (c *Config) Validate() error {
	if c.Watch.Debounce <= 0 {
		return ErrInvalidDebounce
	}
	if c.Watch.CircuitBreakerThreshold <= 0 {
		return ErrInvalidThreshold
	}

	if c.History.MaxRecords <= 0 {
		return ErrInvalidMaxRecords
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return ErrNoHistoryPath
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			Debounce:                500 * time.Millisecond,
			Recursive:               false,
			CircuitBreakerThreshold: 5,
		},
		Display: DisplayConfig{
			AltScreen: true,
			Color:     true,
		},
		History: HistoryConfig{
			Enabled:    true,
			DBPath:     defaultDBPath(),
			MaxRecords: 1000,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "stderr",
			Format: "text",
		},
	}
}
