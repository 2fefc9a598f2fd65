package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrInvalidDebounce is returned when the debounce window is <= 0.
	ErrInvalidDebounce = errors.New("invalid debounce: must be > 0")

	// ErrInvalidThreshold is returned when the circuit breaker threshold is <= 0.
	ErrInvalidThreshold = errors.New("invalid circuit breaker threshold: must be > 0")

	// ErrInvalidMaxRecords is returned when history.max_records is <= 0.
	ErrInvalidMaxRecords = errors.New("invalid history max records: must be > 0")

	// ErrNoHistoryPath is returned when history is enabled without a database path.
	ErrNoHistoryPath = errors.New("history enabled but no database path specified")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when the config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when the config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrInvalidEnv is returned when an environment override cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment override")
)
