package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/isseis/go-libdep-graph/internal/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

// diamond is the graph a recursive traversal of A -> [B, C], B -> [D],
// C -> [D] produces.
func diamond() depgraph.Graph {
	return depgraph.Graph{
		{Node: "A", Deps: []string{"B", "C"}},
		{Node: "B", Deps: []string{"D"}},
		{Node: "D", Deps: []string{}},
		{Node: "C", Deps: []string{"D"}},
		{Node: "D", Deps: []string{}},
	}
}

func cyclic() depgraph.Graph {
	return depgraph.Graph{
		{Node: "app", Deps: []string{"libx.so"}},
		{Node: "libx.so", Deps: []string{"liby.so"}},
		{Node: "liby.so", Deps: []string{"libx.so"}},
	}
}

func renderString(t *testing.T, r Renderer, g depgraph.Graph) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, g))
	return buf.String()
}

func TestNew(t *testing.T) {
	for _, name := range []string{"simple", "pretty", "dot", "json", "yaml"} {
		r, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r)
	}

	_, err := New("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"dot", "json", "pretty", "simple", "yaml"}, Names())
}

func TestSimpleRenderer(t *testing.T) {
	expected := "A: B, C\n" +
		"C: D\n" +
		"B: D\n"
	assert.Equal(t, expected, renderString(t, SimpleRenderer{}, diamond()))

	single := depgraph.Graph{{Node: "app", Deps: []string{"libc.so.6", "libm.so.6"}}}
	assert.Equal(t, "app: libc.so.6, libm.so.6\n", renderString(t, SimpleRenderer{}, single))

	assert.Empty(t, renderString(t, SimpleRenderer{}, depgraph.Graph{{Node: "static"}}))
}

func TestPrettyRenderer(t *testing.T) {
	tests := []struct {
		name     string
		graph    depgraph.Graph
		expected string
	}{
		{
			name:  "diamond renders shared node under each parent",
			graph: diamond(),
			expected: "* A\n" +
				"  ├── B\n" +
				"  │   └── D\n" +
				"  └── C\n" +
				"      └── D\n",
		},
		{
			name:  "non recursive graph",
			graph: depgraph.Graph{{Node: "app", Deps: []string{"libc.so.6", "libm.so.6"}}},
			expected: "* app\n" +
				"  ├── libc.so.6\n" +
				"  └── libm.so.6\n",
		},
		{
			name: "deep tree keeps continuation glyphs",
			graph: depgraph.Graph{
				{Node: "app", Deps: []string{"libssl", "libz"}},
				{Node: "libssl", Deps: []string{"libcrypto", "libc"}},
				{Node: "libcrypto", Deps: []string{"libc"}},
			},
			expected: "* app\n" +
				"  ├── libssl\n" +
				"  │   ├── libcrypto\n" +
				"  │   │   └── libc\n" +
				"  │   └── libc\n" +
				"  └── libz\n",
		},
		{
			name: "several roots",
			graph: depgraph.Graph{
				{Node: "ls", Deps: []string{"libc"}},
				{Node: "cat", Deps: []string{"libc"}},
			},
			expected: "* ls\n" +
				"  └── libc\n" +
				"* cat\n" +
				"  └── libc\n",
		},
		{
			name:  "cycle is not expanded twice",
			graph: cyclic(),
			expected: "* app\n" +
				"  └── libx.so\n" +
				"      └── liby.so\n" +
				"          └── libx.so\n",
		},
		{
			name:     "empty graph",
			graph:    depgraph.Graph{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderString(t, PrettyRenderer{}, tt.graph))
		})
	}
}

func TestDotRenderer(t *testing.T) {
	expected := "digraph G\n{\n" +
		"\t\"A\" -> \"B\";\n" +
		"\t\"A\" -> \"C\";\n" +
		"\t\"C\" -> \"D\";\n" +
		"\t\"B\" -> \"D\";\n" +
		"}\n"
	assert.Equal(t, expected, renderString(t, DotRenderer{}, diamond()))
}

func TestDotRenderer_RankDir(t *testing.T) {
	chain := func(n int) depgraph.Graph {
		names := []string{"n0", "n1", "n2", "n3", "n4", "n5", "n6"}
		g := depgraph.Graph{}
		for i := 0; i < n; i++ {
			var deps []string
			if i+1 < n {
				deps = []string{names[i+1]}
			}
			g = append(g, depgraph.Entry{Node: names[i], Deps: deps})
		}
		return g
	}

	assert.Contains(t, renderString(t, DotRenderer{}, chain(6)), "rankdir=LR\n")
	assert.NotContains(t, renderString(t, DotRenderer{}, chain(5)), "rankdir")

	// duplicates do not count as distinct nodes
	withDuplicates := append(chain(5), depgraph.Entry{Node: "n4"})
	assert.NotContains(t, renderString(t, DotRenderer{}, withDuplicates), "rankdir")
}

func TestDotRenderer_Escaping(t *testing.T) {
	g := depgraph.Graph{{Node: `we"ird`, Deps: []string{`C:\lib`}}}
	assert.Contains(t, renderString(t, DotRenderer{}, g), "\t\"we\\\"ird\" -> \"C:\\\\lib\";\n")
}

func TestSortingRenderers_Cycle(t *testing.T) {
	for _, r := range []Renderer{SimpleRenderer{}, DotRenderer{}} {
		err := r.Render(&bytes.Buffer{}, cyclic())
		assert.ErrorIs(t, err, depgraph.ErrCycle)
	}
}

func TestRenderers_WriteError(t *testing.T) {
	for _, name := range Names() {
		r, err := New(name)
		require.NoError(t, err)
		assert.Error(t, r.Render(failingWriter{}, diamond()), name)
	}
}

func TestJSONRenderer(t *testing.T) {
	out := renderString(t, JSONRenderer{}, depgraph.Graph{{Node: "app", Deps: []string{"libc.so.6"}}, {Node: "libc.so.6"}})

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "app", decoded[0]["node"])
	assert.Equal(t, []any{}, decoded[1]["deps"])

	assert.Equal(t, "[]\n", renderString(t, JSONRenderer{}, nil))
}

func TestYAMLRenderer(t *testing.T) {
	out := renderString(t, YAMLRenderer{}, diamond())

	var decoded depgraph.Graph
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, diamond(), decoded)
}
