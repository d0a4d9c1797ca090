//go:build test

// Package binfmttesting provides test helpers for the binfmt package.
package binfmttesting

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	elfHeaderSize     = 64
	sectionHeaderSize = 64
	dynEntrySize      = 16
)

// BuildDynamicELF returns a minimal little-endian x86_64 ELF shared object
// whose .dynamic section lists needed as DT_NEEDED entries, in order.
func BuildDynamicELF(needed ...string) []byte {
	// .dynstr
	dynstr := []byte{0}
	offsets := make([]uint64, len(needed))
	for i, name := range needed {
		offsets[i] = uint64(len(dynstr))
		dynstr = append(dynstr, name...)
		dynstr = append(dynstr, 0)
	}

	// .dynamic
	var dynamic bytes.Buffer
	for _, off := range offsets {
		_ = binary.Write(&dynamic, binary.LittleEndian, int64(elf.DT_NEEDED))
		_ = binary.Write(&dynamic, binary.LittleEndian, off)
	}
	_ = binary.Write(&dynamic, binary.LittleEndian, int64(elf.DT_NULL))
	_ = binary.Write(&dynamic, binary.LittleEndian, uint64(0))

	shstrtab := []byte("\x00.dynstr\x00.dynamic\x00.shstrtab\x00")
	const (
		nameDynstr   = 1
		nameDynamic  = 9
		nameShstrtab = 18
	)

	dynstrOff := uint64(elfHeaderSize)
	dynamicOff := align8(dynstrOff + uint64(len(dynstr)))
	shstrtabOff := dynamicOff + uint64(dynamic.Len())
	shOff := align8(shstrtabOff + uint64(len(shstrtab)))

	sections := []elf.Section64{
		{},
		{Name: nameDynstr, Type: uint32(elf.SHT_STRTAB), Flags: uint64(elf.SHF_ALLOC), Off: dynstrOff, Size: uint64(len(dynstr)), Addralign: 1},
		{Name: nameDynamic, Type: uint32(elf.SHT_DYNAMIC), Flags: uint64(elf.SHF_ALLOC | elf.SHF_WRITE), Off: dynamicOff, Size: uint64(dynamic.Len()), Link: 1, Addralign: 8, Entsize: dynEntrySize},
		{Name: nameShstrtab, Type: uint32(elf.SHT_STRTAB), Off: shstrtabOff, Size: uint64(len(shstrtab)), Addralign: 1},
	}

	var buf bytes.Buffer
	writeHeader(&buf, elf.ET_DYN, shOff, uint16(len(sections)), 3)
	buf.Write(dynstr)
	pad(&buf, dynamicOff)
	buf.Write(dynamic.Bytes())
	buf.Write(shstrtab)
	pad(&buf, shOff)
	for _, sh := range sections {
		_ = binary.Write(&buf, binary.LittleEndian, sh)
	}
	return buf.Bytes()
}

// BuildStaticELF returns a valid ELF header with no sections at all,
// simulating a statically linked binary.
func BuildStaticELF() []byte {
	var buf bytes.Buffer
	writeHeader(&buf, elf.ET_EXEC, 0, 0, 0)
	return buf.Bytes()
}

// WriteDynamicELF writes BuildDynamicELF(needed...) to path.
func WriteDynamicELF(t *testing.T, path string, needed ...string) {
	t.Helper()
	writeFile(t, path, BuildDynamicELF(needed...))
}

// WriteStaticELF writes BuildStaticELF() to path.
func WriteStaticELF(t *testing.T, path string) {
	t.Helper()
	writeFile(t, path, BuildStaticELF())
}

// WriteTree writes one dynamic ELF per key of deps into dir, each needing
// the listed names. It returns the absolute path of every written file.
func WriteTree(t *testing.T, dir string, deps map[string][]string) map[string]string {
	t.Helper()
	paths := make(map[string]string, len(deps))
	for name, needed := range deps {
		path := filepath.Join(dir, name)
		WriteDynamicELF(t, path, needed...)
		paths[name] = path
	}
	return paths
}

func writeHeader(buf *bytes.Buffer, typ elf.Type, shOff uint64, shNum, shStrNdx uint16) {
	ident := [elf.EI_NIDENT]byte{
		0x7f, 'E', 'L', 'F',
		byte(elf.ELFCLASS64),
		byte(elf.ELFDATA2LSB),
		byte(elf.EV_CURRENT),
		byte(elf.ELFOSABI_NONE),
	}
	hdr := elf.Header64{
		Ident:     ident,
		Type:      uint16(typ),
		Machine:   uint16(elf.EM_X86_64),
		Version:   uint32(elf.EV_CURRENT),
		Ehsize:    elfHeaderSize,
		Phentsize: 56,
		Shoff:     shOff,
		Shentsize: sectionHeaderSize,
		Shnum:     shNum,
		Shstrndx:  shStrNdx,
	}
	_ = binary.Write(buf, binary.LittleEndian, hdr)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	err := os.WriteFile(path, data, 0o755) //nolint:gosec // test fixtures are executables
	require.NoError(t, err)
}

func align8(n uint64) uint64 {
	return (n + 7) &^ 7
}

func pad(buf *bytes.Buffer, to uint64) {
	for uint64(buf.Len()) < to {
		buf.WriteByte(0)
	}
}
