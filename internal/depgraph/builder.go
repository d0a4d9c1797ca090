package depgraph

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isseis/go-libdep-graph/internal/binfmt"
	"github.com/isseis/go-libdep-graph/internal/libpath"
)

// Options configures a Builder.
type Options struct {
	// FullPath labels every node with its resolved absolute path instead of
	// its basename.
	FullPath bool

	// SkipVisited expands each node at most once per FindDependencies call.
	// Edges to an already expanded node are still recorded. When false, a
	// library reached through several parents gets one entry per parent.
	SkipVisited bool
}

// Builder discovers dependency graphs by inspecting binaries and resolving
// the libraries they require.
type Builder struct {
	inspector binfmt.Inspector
	resolver  *libpath.Resolver
	options   Options
}

// NewBuilder creates a Builder.
func NewBuilder(inspector binfmt.Inspector, resolver *libpath.Resolver, options Options) *Builder {
	return &Builder{
		inspector: inspector,
		resolver:  resolver,
		options:   options,
	}
}

// traversal holds the state of one FindDependencies call.
type traversal struct {
	*Builder
	recursive bool
	graph     Graph
	// active holds the identities on the current recursion path. A
	// dependency already on the path is recorded but not expanded again,
	// which bounds recursion on circular on-disk dependency sets.
	active  map[string]bool
	visited map[string]bool
}

// FindDependencies inspects the binary at binaryPath and returns its
// dependency graph. When recursive is true every discovered library is
// resolved through the search paths and inspected in turn, depth first, in
// declaration order. Any inspection or resolution failure aborts the whole
// call; partial graphs are never returned.
func (b *Builder) FindDependencies(binaryPath string, recursive bool) (Graph, error) {
	path, identity, err := b.entryNode(binaryPath)
	if err != nil {
		return nil, err
	}

	t := &traversal{
		Builder:   b,
		recursive: recursive,
		active:    make(map[string]bool),
		visited:   make(map[string]bool),
	}
	if err := t.visit(path, identity); err != nil {
		return nil, err
	}
	return t.graph, nil
}

// entryNode returns the path to open and the identity of the entry binary.
// In full-path mode the entry must be locatable: paths with a directory
// component are made absolute, bare names go through the resolver.
func (b *Builder) entryNode(binaryPath string) (string, string, error) {
	if !b.options.FullPath {
		return binaryPath, filepath.Base(binaryPath), nil
	}

	if filepath.Base(binaryPath) == binaryPath {
		resolved, err := b.resolver.Resolve(binaryPath)
		if err != nil {
			return "", "", err
		}
		return resolved, resolved, nil
	}

	absPath, err := filepath.Abs(binaryPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to get absolute path of %s: %w", binaryPath, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", "", &libpath.LibraryNotFoundError{Name: binaryPath, SearchPaths: b.resolver.SearchPaths()}
	}
	return absPath, absPath, nil
}

func (t *traversal) visit(path, identity string) error {
	libs, err := t.inspector.ListRequiredLibraries(path)
	if err != nil {
		return err
	}

	// In full-path mode the dependencies are resolved before the entry is
	// emitted, so the resolved paths double as the recursion targets.
	deps := libs
	var resolved []string
	if t.options.FullPath {
		resolved = make([]string, len(libs))
		for i, lib := range libs {
			if resolved[i], err = t.resolver.Resolve(lib); err != nil {
				return err
			}
		}
		deps = resolved
	}

	t.graph = append(t.graph, Entry{Node: identity, Deps: deps})
	t.visited[identity] = true
	slog.Debug("inspected binary",
		slog.String("path", path),
		slog.String("node", identity),
		slog.Int("dependencies", len(deps)))

	if !t.recursive {
		return nil
	}

	t.active[identity] = true
	defer delete(t.active, identity)

	for i, lib := range libs {
		childPath := lib
		if resolved != nil {
			childPath = resolved[i]
		} else if childPath, err = t.resolver.Resolve(lib); err != nil {
			return err
		}

		childID := filepath.Base(childPath)
		if t.options.FullPath {
			childID = childPath
		}

		if t.active[childID] {
			slog.Debug("dependency cycle detected, not expanding",
				slog.String("node", identity),
				slog.String("dependency", childID))
			continue
		}
		if t.options.SkipVisited && t.visited[childID] {
			continue
		}

		if err := t.visit(childPath, childID); err != nil {
			return err
		}
	}
	return nil
}
