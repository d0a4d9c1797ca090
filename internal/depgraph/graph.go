package depgraph

// Entry pairs a node with its direct dependencies.
type Entry struct {
	Node string   `json:"node" yaml:"node"`
	Deps []string `json:"deps" yaml:"deps"`
}

// Graph is an ordered sequence of entries. The same node may appear more
// than once when it was reached through several paths.
type Graph []Entry

// Nodes returns the distinct node identities in order of first appearance.
func (g Graph) Nodes() []string {
	seen := make(map[string]struct{}, len(g))
	nodes := make([]string, 0, len(g))
	for _, e := range g {
		if _, ok := seen[e.Node]; ok {
			continue
		}
		seen[e.Node] = struct{}{}
		nodes = append(nodes, e.Node)
	}
	return nodes
}

// Roots returns the entries whose node is never listed as a dependency of
// another entry, in graph order.
func (g Graph) Roots() []Entry {
	referenced := make(map[string]struct{})
	for _, e := range g {
		for _, d := range e.Deps {
			referenced[d] = struct{}{}
		}
	}

	var roots []Entry
	for _, e := range g {
		if _, ok := referenced[e.Node]; !ok {
			roots = append(roots, e)
		}
	}
	return roots
}

// Index returns an identity-indexed view of g.
func (g Graph) Index() *Index {
	ix := &Index{edges: make(map[string][]string, len(g))}
	for _, e := range g {
		if _, ok := ix.edges[e.Node]; ok {
			continue
		}
		ix.edges[e.Node] = e.Deps
		ix.order = append(ix.order, e.Node)
	}
	return ix
}

// Index maps node identities to their dependencies. When a node appears
// several times in the graph the first entry wins.
type Index struct {
	order []string
	edges map[string][]string
}

// Edges returns the dependencies of node and whether node has an entry.
func (ix *Index) Edges(node string) ([]string, bool) {
	deps, ok := ix.edges[node]
	return deps, ok
}

// Entries returns one entry per distinct node in order of first appearance.
func (ix *Index) Entries() []Entry {
	entries := make([]Entry, len(ix.order))
	for i, node := range ix.order {
		entries[i] = Entry{Node: node, Deps: ix.edges[node]}
	}
	return entries
}

// Len returns the number of distinct nodes.
func (ix *Index) Len() int {
	return len(ix.order)
}
