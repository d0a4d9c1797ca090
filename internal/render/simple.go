package render

import (
	"io"
	"strings"

	"github.com/isseis/go-libdep-graph/internal/depgraph"
)

// SimpleRenderer prints "node: dep1, dep2" for every node with at least one
// dependency, dependents before their dependencies.
type SimpleRenderer struct{}

// Render implements Renderer.
func (SimpleRenderer) Render(w io.Writer, g depgraph.Graph) error {
	sorted, err := depgraph.Sort(g)
	if err != nil {
		return err
	}

	tw := &textWriter{w: w}
	for _, e := range depgraph.Reverse(sorted) {
		if len(e.Deps) == 0 {
			continue
		}
		tw.printf("%s: %s\n", e.Node, strings.Join(e.Deps, ", "))
	}
	return tw.err
}
