package depgraph

import "sort"

// Sort orders the distinct nodes of g so that every node comes after all of
// its dependencies that are themselves nodes of g. Dependencies absent from
// the graph never block placement.
//
// Nodes are placed in passes: a pass places, in graph order, every remaining
// node whose in-graph dependencies were placed by earlier passes. The passes
// are computed by in-degree counting, so the cost is O(V+E). A *CycleError is
// returned when a pass would place nothing.
func Sort(g Graph) ([]Entry, error) {
	nodes := g.Index().Entries()
	position := make(map[string]int, len(nodes))
	for i, e := range nodes {
		position[e.Node] = i
	}

	pending := make([]int, len(nodes))
	dependents := make([][]int, len(nodes))
	for i, e := range nodes {
		for _, d := range e.Deps {
			if j, ok := position[d]; ok {
				pending[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	var pass []int
	for i := range nodes {
		if pending[i] == 0 {
			pass = append(pass, i)
		}
	}

	sorted := make([]Entry, 0, len(nodes))
	for len(pass) > 0 {
		var next []int
		for _, i := range pass {
			sorted = append(sorted, nodes[i])
			for _, k := range dependents[i] {
				pending[k]--
				if pending[k] == 0 {
					next = append(next, k)
				}
			}
		}
		sort.Ints(next)
		pass = next
	}

	if len(sorted) < len(nodes) {
		var remaining []string
		for i, e := range nodes {
			if pending[i] > 0 {
				remaining = append(remaining, e.Node)
			}
		}
		return nil, &CycleError{Remaining: remaining}
	}
	return sorted, nil
}

// Reverse returns a copy of entries in reverse order.
func Reverse(entries []Entry) []Entry {
	reversed := make([]Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	return reversed
}
