// Package render presents dependency graphs as text.
//
// Three presentation renderers are provided: "simple" (one line per node
// with dependencies), "pretty" (an ASCII tree per root) and "dot" (Graphviz).
// "json" and "yaml" serialize the graph itself for external tooling.
// Renderers never modify the graph they are given.
package render

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/isseis/go-libdep-graph/internal/depgraph"
)

// ErrUnknownFormat is returned by New for unregistered renderer names.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes a textual representation of a graph.
type Renderer interface {
	Render(w io.Writer, g depgraph.Graph) error
}

var renderers = map[string]func() Renderer{
	"simple": func() Renderer { return SimpleRenderer{} },
	"pretty": func() Renderer { return PrettyRenderer{} },
	"dot":    func() Renderer { return DotRenderer{} },
	"json":   func() Renderer { return JSONRenderer{} },
	"yaml":   func() Renderer { return YAMLRenderer{} },
}

// New returns the renderer registered under name.
func New(name string) (Renderer, error) {
	factory, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFormat, name, Names())
	}
	return factory(), nil
}

// Names returns the registered renderer names, sorted.
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// textWriter remembers the first write error and drops later output.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
