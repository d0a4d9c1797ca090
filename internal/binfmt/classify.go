package binfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

// TagUnknown is returned for content matching no known magic number.
const TagUnknown = "data"

// classifyHeaderLen is the number of leading bytes inspected by Classify.
const classifyHeaderLen = 16

// maxFatArches bounds nfat_arch when telling a Mach-O universal header from
// a Java class file, which shares the 0xcafebabe magic.
const maxFatArches = 20

var elfMagic = []byte("\x7fELF")

// Classify reads the leading bytes of the file at path and returns a short
// format tag such as "ELF 64-bit LSB" or "Mach-O 64-bit".
func Classify(fs safefileio.FileSystem, path string) (string, error) {
	fs = defaultFS(fs)
	file, err := fs.SafeOpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeFile(file, path)

	header := make([]byte, classifyHeaderLen)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return ClassifyBytes(header[:n]), nil
}

// ClassifyBytes returns the format tag for the given file header.
func ClassifyBytes(header []byte) string {
	switch {
	case bytes.HasPrefix(header, elfMagic):
		return classifyELF(header)
	case len(header) >= 4:
		return classifyMachO(header)
	default:
		return TagUnknown
	}
}

func classifyELF(header []byte) string {
	tag := "ELF"
	if len(header) <= 5 {
		return tag
	}
	switch header[4] {
	case 1:
		tag += " 32-bit"
	case 2:
		tag += " 64-bit"
	}
	switch header[5] {
	case 1:
		tag += " LSB"
	case 2:
		tag += " MSB"
	}
	return tag
}

func classifyMachO(header []byte) string {
	be := binary.BigEndian.Uint32(header)
	le := binary.LittleEndian.Uint32(header)
	switch {
	case be == 0xfeedface || le == 0xfeedface:
		return "Mach-O 32-bit"
	case be == 0xfeedfacf || le == 0xfeedfacf:
		return "Mach-O 64-bit"
	case be == 0xcafebabe && len(header) >= 8:
		if nfat := binary.BigEndian.Uint32(header[4:8]); nfat > 0 && nfat < maxFatArches {
			return "Mach-O universal binary"
		}
	}
	return TagUnknown
}
