package render

import (
	"io"

	"github.com/isseis/go-libdep-graph/internal/depgraph"
)

// Tree glyphs.
const (
	branchMid      = "├── "
	branchLast     = "└── "
	continuation   = "│"
	noContinuation = " "
	childIndent    = "   "
	rootMarker     = "* "
	rootIndent     = "  "
)

// PrettyRenderer prints one tree per root node. A library shared by several
// parents is printed under each of them.
type PrettyRenderer struct{}

// Render implements Renderer.
func (PrettyRenderer) Render(w io.Writer, g depgraph.Graph) error {
	p := &treePrinter{
		textWriter: textWriter{w: w},
		index:      g.Index(),
		path:       make(map[string]bool),
	}
	for _, root := range g.Roots() {
		p.printf("%s%s\n", rootMarker, root.Node)
		p.printChildren(root.Node, root.Deps, rootIndent)
	}
	return p.err
}

type treePrinter struct {
	textWriter
	index *depgraph.Index
	// path holds the nodes between the root and the node being printed, so
	// that a cyclic graph prints the repeated node once instead of looping.
	path map[string]bool
}

func (p *treePrinter) printChildren(node string, deps []string, indent string) {
	p.path[node] = true
	defer delete(p.path, node)

	for i, dep := range deps {
		connector, next := branchMid, continuation
		if i == len(deps)-1 {
			connector, next = branchLast, noContinuation
		}
		p.printf("%s%s%s\n", indent, connector, dep)

		if p.path[dep] {
			continue
		}
		sub, _ := p.index.Edges(dep)
		p.printChildren(dep, sub, indent+next+childIndent)
	}
}
