//go:build test

// Package testing provides testing utilities for safefileio package.
package testing

import (
	"errors"

	"github.com/isseis/go-libdep-graph/internal/safefileio"
)

// ErrSafeOpenFileNotImplemented is returned by MockFileSystem when SafeOpenFile
// is not implemented by the test.
var ErrSafeOpenFileNotImplemented = errors.New("SafeOpenFile not implemented in mock")

// MockFileSystem implements safefileio.FileSystem for testing.
type MockFileSystem struct {
	// SafeOpenFileFunc allows customizing SafeOpenFile behavior
	SafeOpenFileFunc func(name string) (safefileio.File, error)

	// OpenCalls records every path passed to SafeOpenFile.
	OpenCalls []string
}

// SafeOpenFile implements safefileio.FileSystem.
func (m *MockFileSystem) SafeOpenFile(name string) (safefileio.File, error) {
	m.OpenCalls = append(m.OpenCalls, name)
	if m.SafeOpenFileFunc != nil {
		return m.SafeOpenFileFunc(name)
	}
	return nil, ErrSafeOpenFileNotImplemented
}

// NewMockFileSystem creates a new MockFileSystem with default implementations.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{}
}
