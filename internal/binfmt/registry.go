package binfmt

import (
	"fmt"
	"regexp"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

type registryEntry struct {
	pattern *regexp.Regexp
	factory Factory
}

// Registry selects an Inspector by matching a format tag against registered
// patterns, first registration first.
type Registry struct {
	fs      safefileio.FileSystem
	entries []registryEntry
}

// NewRegistry creates an empty Registry. If fs is nil, the default
// safefileio.FileSystem is used.
func NewRegistry(fs safefileio.FileSystem) *Registry {
	return &Registry{fs: defaultFS(fs)}
}

// DefaultRegistry returns a Registry knowing ELF and Mach-O files.
func DefaultRegistry(fs safefileio.FileSystem) *Registry {
	r := NewRegistry(fs)
	r.mustRegister(`^ELF`, func(fs safefileio.FileSystem) Inspector { return NewELFInspector(fs) })
	r.mustRegister(`^Mach-O`, func(fs safefileio.FileSystem) Inspector { return NewMachOInspector(fs) })
	return r
}

// Register associates factory with tags matching pattern.
func (r *Registry) Register(pattern string, factory Factory) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid format pattern %q: %w", pattern, err)
	}
	r.entries = append(r.entries, registryEntry{pattern: re, factory: factory})
	return nil
}

func (r *Registry) mustRegister(pattern string, factory Factory) {
	if err := r.Register(pattern, factory); err != nil {
		panic(err)
	}
}

// Supports reports whether an inspector is registered for tag.
func (r *Registry) Supports(tag string) bool {
	return r.lookup(tag) != nil
}

// NewInspector returns the inspector registered for tag, or an
// *UnsupportedFormatError.
func (r *Registry) NewInspector(tag string) (Inspector, error) {
	factory := r.lookup(tag)
	if factory == nil {
		return nil, &UnsupportedFormatError{Tag: tag}
	}
	return factory(r.fs), nil
}

// InspectorFor classifies the file at path and returns the matching inspector.
func (r *Registry) InspectorFor(path string) (Inspector, error) {
	tag, err := Classify(r.fs, path)
	if err != nil {
		return nil, err
	}
	factory := r.lookup(tag)
	if factory == nil {
		return nil, &UnsupportedFormatError{Path: path, Tag: tag}
	}
	return factory(r.fs), nil
}

// ListRequiredLibraries implements Inspector by dispatching to the inspector
// registered for the format of path.
func (r *Registry) ListRequiredLibraries(path string) ([]string, error) {
	inspector, err := r.InspectorFor(path)
	if err != nil {
		return nil, err
	}
	return inspector.ListRequiredLibraries(path)
}

func (r *Registry) lookup(tag string) Factory {
	for _, e := range r.entries {
		if e.pattern.MatchString(tag) {
			return e.factory
		}
	}
	return nil
}
