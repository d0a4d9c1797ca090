package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/isseis/go-libdep-graph/internal/depgraph"
	"gopkg.in/yaml.v3"
)

// JSONRenderer writes the graph as a JSON array of {"node", "deps"} objects
// in discovery order, duplicates included.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, g depgraph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(g)); err != nil {
		return fmt.Errorf("failed to encode graph as JSON: %w", err)
	}
	return nil
}

// YAMLRenderer writes the graph as a YAML sequence of node/deps mappings.
type YAMLRenderer struct{}

// Render implements Renderer.
func (YAMLRenderer) Render(w io.Writer, g depgraph.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(g)); err != nil {
		return fmt.Errorf("failed to encode graph as YAML: %w", err)
	}
	return enc.Close()
}

// normalize returns a copy of g with empty dependency lists as empty slices
// so that they serialize as [] rather than null.
func normalize(g depgraph.Graph) depgraph.Graph {
	out := make(depgraph.Graph, len(g))
	for i, e := range g {
		deps := e.Deps
		if deps == nil {
			deps = []string{}
		}
		out[i] = depgraph.Entry{Node: e.Node, Deps: deps}
	}
	return out
}
