package binfmt

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
)

// versionedLibrary matches shared object names such as libc.so.6.
var versionedLibrary = regexp.MustCompile(`\.so(\.[0-9]+)*$`)

// FinderOptions selects which kinds of binaries Finder reports besides
// executables.
type FinderOptions struct {
	IncludeLibraries     bool
	IncludeKernelModules bool
}

// Finder locates binary executables, shared libraries and kernel modules
// under a directory tree.
type Finder struct {
	registry *Registry
	options  FinderOptions
}

// NewFinder creates a Finder reporting files whose format registry supports.
func NewFinder(registry *Registry, options FinderOptions) *Finder {
	return &Finder{registry: registry, options: options}
}

// Scan walks dir and returns the paths of matching binaries in walk order.
// Symlinks, object files and static archives are skipped. Executables are
// recognized by the owner execute bit on extension-less files.
func (f *Finder) Scan(dir string) ([]string, error) {
	var results []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !f.wanted(path, info.Mode()) {
			return nil
		}

		tag, err := Classify(f.registry.fs, path)
		if err != nil {
			slog.Debug("skipping unreadable file", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if f.registry.Supports(tag) {
			results = append(results, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (f *Finder) wanted(path string, mode fs.FileMode) bool {
	ext := filepath.Ext(path)
	switch {
	case ext == ".o" || ext == ".a":
		return false
	case ext == ".ko":
		return f.options.IncludeKernelModules
	case versionedLibrary.MatchString(path):
		return f.options.IncludeLibraries
	case ext == "":
		return mode&0o100 != 0
	default:
		return false
	}
}
