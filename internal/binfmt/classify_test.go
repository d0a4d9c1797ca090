//go:build test

package binfmt

import (
	"os"
	"path/filepath"
	"testing"

	binfmttesting "github.com/isseis/go-libdep-graph/internal/binfmt/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBytes(t *testing.T) {
	tests := []struct {
		name     string
		header   []byte
		expected string
	}{
		{name: "elf64 little endian", header: []byte{0x7f, 'E', 'L', 'F', 2, 1, 1}, expected: "ELF 64-bit LSB"},
		{name: "elf32 big endian", header: []byte{0x7f, 'E', 'L', 'F', 1, 2, 1}, expected: "ELF 32-bit MSB"},
		{name: "bare elf magic", header: []byte{0x7f, 'E', 'L', 'F'}, expected: "ELF"},
		{name: "mach-o 64 little endian", header: []byte{0xcf, 0xfa, 0xed, 0xfe}, expected: "Mach-O 64-bit"},
		{name: "mach-o 32 big endian", header: []byte{0xfe, 0xed, 0xfa, 0xce}, expected: "Mach-O 32-bit"},
		{name: "mach-o universal", header: []byte{0xca, 0xfe, 0xba, 0xbe, 0, 0, 0, 2}, expected: "Mach-O universal binary"},
		{name: "java class file", header: []byte{0xca, 0xfe, 0xba, 0xbe, 0, 0, 0, 52}, expected: TagUnknown},
		{name: "shell script", header: []byte("#!/bin/sh\n"), expected: TagUnknown},
		{name: "empty", header: nil, expected: TagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyBytes(tt.header))
		})
	}
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "libfoo.so.1")
	binfmttesting.WriteDynamicELF(t, lib, "libc.so.6")

	tag, err := Classify(nil, lib)
	require.NoError(t, err)
	assert.Equal(t, "ELF 64-bit LSB", tag)

	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte("ab"), 0o600))
	tag, err = Classify(nil, short)
	require.NoError(t, err)
	assert.Equal(t, TagUnknown, tag)

	_, err = Classify(nil, filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
