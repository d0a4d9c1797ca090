package safefileio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// DefaultMaxFileSize is the maximum file size accepted by SafeOpenFile (1 GB).
const DefaultMaxFileSize = 1 << 30

// MaxFileSize is the maximum allowed file size for SafeReadFile (128 MB)
const MaxFileSize = 128 * 1024 * 1024

// File is the read-only view of an opened file. It implements io.ReaderAt so
// that it can be handed directly to debug/elf and debug/macho.
type File interface {
	io.Reader
	io.ReaderAt
	io.Closer
	Stat() (os.FileInfo, error)
}

// FileSystem opens files for inspection.
type FileSystem interface {
	SafeOpenFile(name string) (File, error)
}

// FileSystemConfig configures the default FileSystem.
type FileSystemConfig struct {
	// MaxFileSize bounds the size of opened files. Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

type osFS struct {
	maxFileSize int64
}

// NewFileSystem returns a FileSystem backed by the local disk.
func NewFileSystem(cfg FileSystemConfig) FileSystem {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	return &osFS{maxFileSize: cfg.MaxFileSize}
}

// SafeOpenFile opens name read-only and verifies through the file descriptor
// that it is a regular file no larger than the configured limit. Symlinks are
// followed because shared libraries are routinely installed as links to
// versioned files. On any validation failure the file is closed before
// returning.
func (fs *osFS) SafeOpenFile(name string) (File, error) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - the path is validated through the descriptor after opening
	file, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}

	fileInfo, err := validateFile(file, absPath)
	if err != nil {
		closeQuietly(file, absPath)
		return nil, err
	}

	if fileInfo.Size() > fs.maxFileSize {
		closeQuietly(file, absPath)
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, fileInfo.Size(), fs.maxFileSize)
	}

	return file, nil
}

// SafeReadFile reads a file after checking that neither it nor any of its
// parent directories is a symlink. It enforces a maximum file size of
// MaxFileSize to prevent memory exhaustion.
func SafeReadFile(filePath string) ([]byte, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and O_NOFOLLOW rejects a symlinked leaf
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, ErrIsSymlink
		}
		return nil, err
	}
	defer closeQuietly(file, absPath)

	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	fileInfo, err := validateFile(file, absPath)
	if err != nil {
		return nil, err
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(content)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return content, nil
}

// verifyPathComponents checks if any directory component of the path is a symlink.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break // Reached root directory
		}

		fi, err := os.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}

	return nil
}

// validateFile checks if the file is a regular file and returns its FileInfo.
// The descriptor is used so the check applies to the file actually opened.
func validateFile(file *os.File, filePath string) (os.FileInfo, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotRegularFile, filePath, fileInfo.Mode())
	}

	return fileInfo, nil
}

func closeQuietly(file *os.File, path string) {
	if err := file.Close(); err != nil {
		slog.Warn("error closing file", slog.String("path", path), slog.Any("error", err))
	}
}

// isNoFollowError reports whether err is the result of opening a symlink with
// O_NOFOLLOW. Linux returns ELOOP, FreeBSD returns EMLINK.
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, syscall.ELOOP) || errors.Is(e.Err, syscall.EMLINK)
}
