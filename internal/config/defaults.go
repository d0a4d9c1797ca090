package config

import (
	"github.com/isseis/go-libdep-graph/internal/libpath"
	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

// Default values for configuration fields
const (
	DefaultFormat      = "simple"
	DefaultCacheSize   = 256
	DefaultMaxFileSize = safefileio.DefaultMaxFileSize
	DefaultLogLevel    = "info"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields of cfg with default values.
func ApplyDefaults(cfg *Config) {
	if len(cfg.Search.Paths) == 0 {
		cfg.Search.Paths = append([]string(nil), libpath.DefaultSearchPaths...)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultFormat
	}
	if cfg.Inspect.CacheSize == nil {
		size := DefaultCacheSize
		cfg.Inspect.CacheSize = &size
	}
	if cfg.Inspect.MaxFileSize == 0 {
		cfg.Inspect.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// SearchPaths returns the ordered directories to resolve libraries against.
// getenv is consulted for LD_LIBRARY_PATH when enabled.
func (c *Config) SearchPaths(getenv func(string) string) []string {
	var paths []string
	if c.Search.UseLDLibraryPath && getenv != nil {
		paths = append(paths, libpath.SplitList(getenv("LD_LIBRARY_PATH"))...)
	}
	return append(paths, c.Search.Paths...)
}
