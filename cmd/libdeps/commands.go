package main

import (
	"fmt"

	"github.com/isseis/go-libdep-graph/internal/binfmt"
	"github.com/isseis/go-libdep-graph/internal/depgraph"
	"github.com/isseis/go-libdep-graph/internal/libpath"
	"github.com/isseis/go-libdep-graph/internal/render"
	"github.com/isseis/go-libdep-graph/internal/safefileio"
	"github.com/spf13/cobra"
)

type graphFlags struct {
	libraryPaths []string
	fullPath     bool
	recursive    bool
	skipVisited  bool
	format       string
}

func newGraphCommand(a *app) *cobra.Command {
	var f graphFlags
	cmd := &cobra.Command{
		Use:   "graph [flags] <binary>... | -",
		Short: "Print the dependency graph of each binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGraph(cmd, f, args)
		},
	}
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.libraryPaths, "library-path", "L", nil, "directory searched before the configured paths (repeatable)")
	flags.BoolVar(&f.fullPath, "full-path", false, "label nodes with resolved absolute paths")
	flags.BoolVarP(&f.recursive, "recursive", "r", false, "follow dependencies of dependencies")
	flags.BoolVar(&f.skipVisited, "skip-visited", false, "expand each library only once")
	flags.StringVarP(&f.format, "format", "f", "", fmt.Sprintf("output format %v", render.Names()))
	return cmd
}

func (a *app) runGraph(cmd *cobra.Command, f graphFlags, args []string) error {
	paths, err := a.inputPaths(args)
	if err != nil {
		return err
	}

	spec := a.cfg.Graph
	format := a.cfg.Output.Format
	flags := cmd.Flags()
	if flags.Changed("full-path") {
		spec.FullPath = f.fullPath
	}
	if flags.Changed("recursive") {
		spec.Recursive = f.recursive
	}
	if flags.Changed("skip-visited") {
		spec.SkipVisited = f.skipVisited
	}
	if flags.Changed("format") {
		format = f.format
	}

	renderer, err := render.New(format)
	if err != nil {
		return err
	}
	inspector, err := a.newInspector()
	if err != nil {
		return err
	}
	searchPaths := append(append([]string(nil), f.libraryPaths...), a.cfg.SearchPaths(a.getenv)...)
	builder := depgraph.NewBuilder(inspector, libpath.NewResolver(searchPaths...), depgraph.Options{
		FullPath:    spec.FullPath,
		SkipVisited: spec.SkipVisited,
	})

	for _, path := range paths {
		g, err := builder.FindDependencies(path, spec.Recursive)
		if err != nil {
			return err
		}
		if err := renderer.Render(a.stdout, g); err != nil {
			return fmt.Errorf("failed to write graph of %s: %w", path, err)
		}
	}
	return nil
}

// newInspector returns the format registry, behind a cache when one is configured.
func (a *app) newInspector() (binfmt.Inspector, error) {
	registry := binfmt.DefaultRegistry(a.fileSystem())
	size := *a.cfg.Inspect.CacheSize
	if size == 0 {
		return registry, nil
	}
	cached, err := binfmt.NewCachingInspector(registry, size)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (a *app) fileSystem() safefileio.FileSystem {
	return safefileio.NewFileSystem(safefileio.FileSystemConfig{MaxFileSize: a.cfg.Inspect.MaxFileSize})
}

func newScanCommand(a *app) *cobra.Command {
	var options binfmt.FinderOptions
	cmd := &cobra.Command{
		Use:   "scan [flags] <dir>...",
		Short: "List the binaries found under directories",
		RunE: func(_ *cobra.Command, args []string) error {
			dirs, err := a.inputPaths(args)
			if err != nil {
				return err
			}
			finder := binfmt.NewFinder(binfmt.DefaultRegistry(a.fileSystem()), options)
			for _, dir := range dirs {
				found, err := finder.Scan(dir)
				if err != nil {
					return fmt.Errorf("failed to scan %s: %w", dir, err)
				}
				for _, path := range found {
					if _, err := fmt.Fprintln(a.stdout, path); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&options.IncludeLibraries, "include-libs", false, "also report shared libraries")
	cmd.Flags().BoolVar(&options.IncludeKernelModules, "include-kmods", false, "also report kernel modules")
	return cmd
}
