package binfmt

import (
	"debug/elf"
	"fmt"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

const formatELF = "ELF"

// ELFInspector reads DT_NEEDED entries from the dynamic section of ELF files.
type ELFInspector struct {
	fs safefileio.FileSystem
}

// NewELFInspector creates an ELFInspector. If fs is nil, the default
// safefileio.FileSystem is used.
func NewELFInspector(fs safefileio.FileSystem) *ELFInspector {
	return &ELFInspector{fs: defaultFS(fs)}
}

// ListRequiredLibraries implements Inspector.
func (i *ELFInspector) ListRequiredLibraries(path string) ([]string, error) {
	file, err := i.fs.SafeOpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeFile(file, path)

	// safefileio.File implements io.ReaderAt, so the descriptor validated by
	// SafeOpenFile is the one parsed.
	elfFile, err := elf.NewFile(file)
	if err != nil {
		return nil, &ParseError{Path: path, Format: formatELF, Err: err}
	}

	// DynString walks the SHT_DYNAMIC section in declaration order and
	// returns nil when there is none (statically linked binary).
	libs, err := elfFile.DynString(elf.DT_NEEDED)
	if err != nil {
		return nil, &ParseError{Path: path, Format: formatELF, Err: err}
	}
	if libs == nil {
		libs = []string{}
	}
	return libs, nil
}
