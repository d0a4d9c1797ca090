package render

import (
	"io"
	"strings"

	"github.com/isseis/go-libdep-graph/internal/depgraph"
)

// dotRankDirThreshold is the number of distinct nodes from which the graph
// is laid out left to right.
const dotRankDirThreshold = 6

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// DotRenderer prints the graph in Graphviz DOT format.
type DotRenderer struct{}

// Render implements Renderer.
func (DotRenderer) Render(w io.Writer, g depgraph.Graph) error {
	sorted, err := depgraph.Sort(g)
	if err != nil {
		return err
	}

	tw := &textWriter{w: w}
	tw.printf("digraph G\n{\n")
	if len(g.Nodes()) >= dotRankDirThreshold {
		tw.printf("rankdir=LR\n")
	}
	for _, e := range depgraph.Reverse(sorted) {
		for _, dep := range e.Deps {
			tw.printf("\t\"%s\" -> \"%s\";\n", dotEscaper.Replace(e.Node), dotEscaper.Replace(dep))
		}
	}
	tw.printf("}\n")
	return tw.err
}
