package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/isseis/go-libdep-graph/internal/render"
)

// Validate checks the values of a configuration with defaults applied.
func Validate(cfg *Config) error {
	for i, p := range cfg.Search.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: search.paths[%d]", ErrEmptySearchPath, i)
		}
	}

	if !slices.Contains(render.Names(), cfg.Output.Format) {
		return fmt.Errorf("%w: %q (available: %s)", ErrInvalidFormat, cfg.Output.Format, strings.Join(render.Names(), ", "))
	}

	if cfg.Inspect.CacheSize != nil && *cfg.Inspect.CacheSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, *cfg.Inspect.CacheSize)
	}
	if cfg.Inspect.MaxFileSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFileSize, cfg.Inspect.MaxFileSize)
	}

	if _, err := ParseLogLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel converts a level name such as "debug" or "warn" to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
	return l, nil
}
