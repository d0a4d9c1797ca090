package binfmt

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingInspector remembers the libraries listed for recently inspected
// paths so that a library reached through several parents is parsed once.
// Failures are not cached.
type CachingInspector struct {
	inner Inspector
	cache *lru.Cache[string, []string]
}

// NewCachingInspector wraps inner with an LRU cache holding up to size paths.
func NewCachingInspector(inner Inspector, size int) (*CachingInspector, error) {
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspection cache: %w", err)
	}
	return &CachingInspector{inner: inner, cache: cache}, nil
}

// ListRequiredLibraries implements Inspector.
func (c *CachingInspector) ListRequiredLibraries(path string) ([]string, error) {
	if libs, ok := c.cache.Get(path); ok {
		slog.Debug("inspection cache hit", slog.String("path", path))
		return cloneStrings(libs), nil
	}

	libs, err := c.inner.ListRequiredLibraries(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, cloneStrings(libs))
	return libs, nil
}

// Len returns the number of cached paths.
func (c *CachingInspector) Len() int {
	return c.cache.Len()
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
