package binfmt

import (
	"errors"
	"fmt"
)

// Static errors
var (
	// ErrParse is matched by ParseError through errors.Is.
	ErrParse = errors.New("malformed binary")

	// ErrUnsupportedFormat is matched by UnsupportedFormatError through errors.Is.
	ErrUnsupportedFormat = errors.New("file format not supported")
)

// ParseError indicates that a file could not be parsed as the binary format
// its inspector expects.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnsupportedFormatError indicates that no inspector is registered for the
// format of a file.
type UnsupportedFormatError struct {
	Path string
	Tag  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("file format not supported: %q", e.Tag)
	}
	return fmt.Sprintf("file format not supported: %s (%q)", e.Path, e.Tag)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}
