package config

import "errors"

// Configuration loading and validation errors
var (
	// ErrInvalidConfigPath is returned when the config file path is invalid
	ErrInvalidConfigPath = errors.New("invalid config file path")

	// ErrInvalidFormat is returned when output.format names no renderer
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidCacheSize is returned when inspect.cache_size is negative
	ErrInvalidCacheSize = errors.New("invalid inspection cache size")

	// ErrInvalidMaxFileSize is returned when inspect.max_file_size is negative
	ErrInvalidMaxFileSize = errors.New("invalid maximum file size")

	// ErrInvalidLogLevel is returned when log.level is not a slog level name
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrEmptySearchPath is returned when search.paths contains an empty entry
	ErrEmptySearchPath = errors.New("empty search path")
)
