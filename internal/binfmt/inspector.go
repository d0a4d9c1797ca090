package binfmt

import (
	"log/slog"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

// Inspector lists the shared libraries a binary requires.
type Inspector interface {
	// ListRequiredLibraries returns the library names declared by the binary
	// at path, in on-disk declaration order. A binary without dynamic
	// linkage information yields an empty list.
	ListRequiredLibraries(path string) ([]string, error)
}

// Factory creates an Inspector reading files through fs.
type Factory func(fs safefileio.FileSystem) Inspector

func defaultFS(fs safefileio.FileSystem) safefileio.FileSystem {
	if fs == nil {
		return safefileio.NewFileSystem(safefileio.FileSystemConfig{})
	}
	return fs
}

func closeFile(file safefileio.File, path string) {
	if err := file.Close(); err != nil {
		slog.Warn("error closing file during inspection",
			slog.String("path", path),
			slog.Any("error", err))
	}
}
