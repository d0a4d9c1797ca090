package libpath

import (
	"errors"
	"fmt"
)

// ErrLibraryNotFound is matched by LibraryNotFoundError through errors.Is.
var ErrLibraryNotFound = errors.New("library not found")

// LibraryNotFoundError indicates that a library name could not be resolved
// to an existing file through the configured search paths.
type LibraryNotFoundError struct {
	Name        string
	SearchPaths []string
}

func (e *LibraryNotFoundError) Error() string {
	if len(e.SearchPaths) == 0 {
		return fmt.Sprintf("can not find '%s' (no search paths configured)", e.Name)
	}
	return fmt.Sprintf("can not find '%s' in %v", e.Name, e.SearchPaths)
}

// Is reports whether target is ErrLibraryNotFound.
func (e *LibraryNotFoundError) Is(target error) bool {
	return target == ErrLibraryNotFound
}
