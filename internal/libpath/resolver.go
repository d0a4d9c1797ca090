// Package libpath resolves shared library names to filesystem locations
// using an ordered list of search directories.
package libpath

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSearchPaths lists the directories searched when no paths are configured.
var DefaultSearchPaths = []string{
	"/lib",
	"/usr/lib",
	"/lib64",
	"/usr/lib64",
	"/usr/local/lib",
}

// Resolver turns library names into absolute paths. The first directory
// containing the name wins. Lookups are not cached.
type Resolver struct {
	paths []string
}

// NewResolver creates a Resolver searching the given directories in order.
func NewResolver(paths ...string) *Resolver {
	r := &Resolver{}
	for _, p := range paths {
		r.AddSearchPath(p)
	}
	return r
}

// AddSearchPath appends path to the search list. The directory is not
// required to exist.
func (r *Resolver) AddSearchPath(path string) {
	r.paths = append(r.paths, path)
}

// SearchPaths returns a copy of the configured search directories.
func (r *Resolver) SearchPaths() []string {
	paths := make([]string, len(r.paths))
	copy(paths, r.paths)
	return paths
}

// Resolve returns name unchanged when it is already absolute. Otherwise it
// returns the first existing directory/name from the search list, or a
// *LibraryNotFoundError.
func (r *Resolver) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	for _, dir := range r.paths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	slog.Debug("library not found in search paths",
		slog.String("name", name),
		slog.Any("search_paths", r.paths))
	return "", &LibraryNotFoundError{Name: name, SearchPaths: r.SearchPaths()}
}

// SplitList splits a colon separated list such as LD_LIBRARY_PATH,
// dropping empty elements.
func SplitList(list string) []string {
	var paths []string
	for _, p := range strings.Split(list, string(os.PathListSeparator)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
