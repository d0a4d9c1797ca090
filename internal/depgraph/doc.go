// Package depgraph builds and orders shared-library dependency graphs.
//
// A Graph is an adjacency list in discovery order: each Entry pairs a node
// identity (a file basename, or an absolute path in full-path mode) with the
// identities of its direct dependencies, in declaration order. Recursive
// traversal does not deduplicate, so a library reached through several
// parents appears once per parent.
//
// Graphs are built by Builder and never modified afterwards; Sort and the
// renderers only read them.
package depgraph
