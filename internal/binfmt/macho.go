package binfmt

import (
	"debug/macho"
	"fmt"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

const formatMachO = "Mach-O"

// MachOInspector reads the dylib load commands of Mach-O files. For universal
// binaries the first architecture slice is inspected.
type MachOInspector struct {
	fs safefileio.FileSystem
}

// NewMachOInspector creates a MachOInspector. If fs is nil, the default
// safefileio.FileSystem is used.
func NewMachOInspector(fs safefileio.FileSystem) *MachOInspector {
	return &MachOInspector{fs: defaultFS(fs)}
}

// ListRequiredLibraries implements Inspector.
func (i *MachOInspector) ListRequiredLibraries(path string) ([]string, error) {
	file, err := i.fs.SafeOpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeFile(file, path)

	machoFile, err := macho.NewFile(file)
	if err != nil {
		fat, fatErr := macho.NewFatFile(file)
		if fatErr != nil || len(fat.Arches) == 0 {
			return nil, &ParseError{Path: path, Format: formatMachO, Err: err}
		}
		machoFile = fat.Arches[0].File
	}

	libs, err := machoFile.ImportedLibraries()
	if err != nil {
		return nil, &ParseError{Path: path, Format: formatMachO, Err: err}
	}
	if libs == nil {
		libs = []string{}
	}
	return libs, nil
}
