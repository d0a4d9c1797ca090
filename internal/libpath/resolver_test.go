package libpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	usrLib := filepath.Join(root, "usr", "lib")
	lib := filepath.Join(root, "lib")
	require.NoError(t, os.MkdirAll(usrLib, 0o750))
	touch(t, filepath.Join(lib, "libm.so.6"))
	touch(t, filepath.Join(lib, "libc.so.6"))
	touch(t, filepath.Join(usrLib, "libc.so.6"))

	r := NewResolver()
	r.AddSearchPath(usrLib)
	r.AddSearchPath(lib)

	tests := []struct {
		name     string
		library  string
		expected string
	}{
		{name: "found only in second path", library: "libm.so.6", expected: filepath.Join(lib, "libm.so.6")},
		{name: "first match wins", library: "libc.so.6", expected: filepath.Join(usrLib, "libc.so.6")},
		{name: "absolute path unchanged", library: "/nonexistent/libz.so.1", expected: "/nonexistent/libz.so.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.library)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolver_ResolveNotFound(t *testing.T) {
	r := NewResolver(t.TempDir(), t.TempDir())

	_, err := r.Resolve("libm.so.6")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLibraryNotFound))

	var notFound *LibraryNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "libm.so.6", notFound.Name)
	assert.Len(t, notFound.SearchPaths, 2)
}

func TestResolver_NoSearchPaths(t *testing.T) {
	_, err := NewResolver().Resolve("libc.so.6")
	assert.ErrorIs(t, err, ErrLibraryNotFound)
	assert.Contains(t, err.Error(), "no search paths")
}

func TestResolver_SearchPathsIsCopy(t *testing.T) {
	r := NewResolver("/lib")
	paths := r.SearchPaths()
	paths[0] = "/changed"
	assert.Equal(t, []string{"/lib"}, r.SearchPaths())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"/opt/lib", "/usr/local/lib"}, SplitList("/opt/lib::/usr/local/lib:"))
	assert.Nil(t, SplitList(""))
}
