// Package safefileio provides read-only file access that only hands out
// regular files of bounded size.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file is too large.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNotRegularFile indicates that the path names a device, FIFO, socket or directory.
	ErrNotRegularFile = errors.New("not a regular file")
)
