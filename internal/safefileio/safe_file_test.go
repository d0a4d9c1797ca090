package safefileio

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeTempDir creates a temporary directory and resolves any symlinks in its path
// to ensure consistent behavior across different environments.
func safeTempDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	realPath, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err, "Failed to resolve symlinks in temp dir")
	return realPath
}

func TestSafeOpenFile(t *testing.T) {
	dir := safeTempDir(t)
	target := filepath.Join(dir, "libfoo.so.1.2")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0o600))
	link := filepath.Join(dir, "libfoo.so.1")
	require.NoError(t, os.Symlink(target, link))

	fs := NewFileSystem(FileSystemConfig{})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "regular file", path: target},
		{name: "symlink to regular file is followed", path: link},
		{name: "directory is rejected", path: dir, wantErr: ErrNotRegularFile},
		{name: "missing file", path: filepath.Join(dir, "missing"), wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := fs.SafeOpenFile(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			defer func() { require.NoError(t, f.Close()) }()

			data, err := io.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, "content", string(data))
		})
	}
}

func TestSafeOpenFile_TooLarge(t *testing.T) {
	dir := safeTempDir(t)
	path := filepath.Join(dir, "big")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o600))

	fs := NewFileSystem(FileSystemConfig{MaxFileSize: 16})
	_, err := fs.SafeOpenFile(path)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSafeReadFile(t *testing.T) {
	dir := safeTempDir(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[graph]\n"), 0o600))

	content, err := SafeReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[graph]\n", string(content))
}

func TestSafeReadFile_RejectsSymlinks(t *testing.T) {
	dir := safeTempDir(t)
	target := filepath.Join(dir, "real.toml")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	link := filepath.Join(dir, "link.toml")
	require.NoError(t, os.Symlink(target, link))
	_, err := SafeReadFile(link)
	assert.ErrorIs(t, err, ErrIsSymlink)

	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(realDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(realDir, "c.toml"), []byte("x"), 0o600))
	linkDir := filepath.Join(dir, "linked")
	require.NoError(t, os.Symlink(realDir, linkDir))
	_, err = SafeReadFile(filepath.Join(linkDir, "c.toml"))
	assert.ErrorIs(t, err, ErrIsSymlink)
}

func TestIsNoFollowError(t *testing.T) {
	assert.True(t, isNoFollowError(&os.PathError{Err: syscall.ELOOP}))
	assert.True(t, isNoFollowError(&os.PathError{Err: syscall.EMLINK}))
	assert.False(t, isNoFollowError(os.ErrNotExist))
	assert.False(t, isNoFollowError(nil))
}
