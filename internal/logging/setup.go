package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

// Error definitions
var (
	ErrEmptyLogDir = errors.New("log directory path is empty")
)

const (
	logFilePerm = 0o600
	logDirPerm  = 0o750
	// schemaVersion is bumped when the JSON log attributes change shape.
	schemaVersion = "1.0"
)

// LoggerConfig holds what NewLogger needs to build a logger.
type LoggerConfig struct {
	Level       slog.Level
	LogDir      string
	RunID       string
	Console     io.Writer
	Interactive bool
	Quiet       bool
}

// GenerateRunID returns a lexically sortable identifier for one invocation.
func GenerateRunID() string {
	return ulid.Make().String()
}

// NewLogger builds a logger from cfg. The returned closer releases the log
// file, if any, and is always non-nil.
func NewLogger(cfg LoggerConfig) (*slog.Logger, func() error, error) {
	closer := func() error { return nil }
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handlers []slog.Handler
	if !cfg.Quiet {
		console := cfg.Console
		if console == nil {
			console = os.Stderr
		}
		if cfg.Interactive {
			handlers = append(handlers, slog.NewTextHandler(console, opts))
		} else {
			handlers = append(handlers, slog.NewJSONHandler(console, opts))
		}
	}

	if cfg.LogDir != "" {
		runID := cfg.RunID
		if runID == "" {
			runID = GenerateRunID()
		}
		f, err := OpenLogFile(cfg.LogDir, runID, time.Now())
		if err != nil {
			return nil, closer, err
		}
		closer = f.Close
		hostname, _ := os.Hostname()
		fileHandler := slog.NewJSONHandler(f, opts).WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.String("schema_version", schemaVersion),
			slog.String("run_id", runID),
		})
		handlers = append(handlers, fileHandler)
	}

	if len(handlers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), closer, nil
	}
	return slog.New(newFanoutHandler(handlers...)), closer, nil
}

// SetupLogger builds a logger with NewLogger and installs it as the slog default.
func SetupLogger(cfg LoggerConfig) (func() error, error) {
	logger, closer, err := NewLogger(cfg)
	if err != nil {
		return closer, err
	}
	slog.SetDefault(logger)
	slog.Debug("Logger initialized",
		"log-level", cfg.Level.String(),
		"log-dir", cfg.LogDir,
		"run_id", cfg.RunID,
		"interactive_mode", cfg.Interactive)
	return closer, nil
}

// OpenLogFile creates a new log file named host_timestamp_runID.json in dir.
// An existing file with the same name is never overwritten.
func OpenLogFile(dir, runID string, now time.Time) (*os.File, error) {
	if dir == "" {
		return nil, ErrEmptyLogDir
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	name := fmt.Sprintf("%s_%s_%s.json", hostname, now.UTC().Format("20060102T150405Z"), runID)
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, logFilePerm) //nolint:gosec // path is built from a configured directory
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	return f, nil
}
