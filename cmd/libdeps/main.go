// Package main is the entry point of libdeps, which prints the shared
// library dependency graph of binaries.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/isseis/go-libdep-graph/internal/config"
	"github.com/isseis/go-libdep-graph/internal/logging"
	"github.com/isseis/go-libdep-graph/internal/terminal"
	"github.com/spf13/cobra"
)

// ErrNoInput is returned when a command is given nothing to work on.
var ErrNoInput = errors.New("no input paths given")

// app carries the state shared by every subcommand of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	configPath  string
	logLevel    string
	logDir      string
	interactive bool
	quiet       bool

	cfg      *config.Config
	closeLog func() error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes libdeps with args and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		getenv:   os.Getenv,
		closeLog: func() error { return nil },
	}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if closeErr := a.closeLog(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close log file: %w", closeErr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "libdeps",
		Short:         "Show the shared library dependencies of binaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to the TOML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logDir, "log-dir", "", "directory to write a JSON log file for this run")
	flags.BoolVar(&a.interactive, "interactive", false, "force human readable console logs")
	flags.BoolVar(&a.quiet, "quiet", false, "suppress console logs")

	root.AddCommand(newGraphCommand(a), newScanCommand(a))
	return root
}

// setup loads the configuration and installs the default logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		levelName = a.logLevel
	}
	level, err := config.ParseLogLevel(levelName)
	if err != nil {
		return err
	}
	logDir := cfg.Log.Dir
	if cmd.Flags().Changed("log-dir") {
		logDir = a.logDir
	}

	closer, err := logging.SetupLogger(logging.LoggerConfig{
		Level:       level,
		LogDir:      logDir,
		RunID:       logging.GenerateRunID(),
		Console:     a.stderr,
		Interactive: a.isInteractive(),
		Quiet:       a.quiet,
	})
	a.closeLog = closer
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.Debug("Configuration loaded", slog.String("config", a.configPath))
	return nil
}

func (a *app) isInteractive() bool {
	detector := terminal.NewDetector(terminal.DetectorOptions{ForceInteractive: a.interactive}, a.getenv)
	f, ok := a.stderr.(*os.File)
	if !ok {
		return a.interactive
	}
	return detector.IsInteractive(f.Fd())
}

// inputPaths returns args, or the lines of stdin when args is a single "-".
func (a *app) inputPaths(args []string) ([]string, error) {
	if len(args) != 1 || args[0] != "-" {
		if len(args) == 0 {
			return nil, ErrNoInput
		}
		return args, nil
	}

	var paths []string
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paths from stdin: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	return paths, nil
}
