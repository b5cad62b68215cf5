// Package tree provides a rooted, ordered tree optimized for layout passes.
//
// # Overview
//
// A [Tree] owns all of its nodes in a single arena. Nodes are addressed by
// dense integer [ID] values, so algorithm scratch state can live in plain
// slices indexed by node ID instead of per-node mutable fields. The tree
// itself is structural data only: labels, parent/child links, depths and
// sibling positions. Layout coordinates belong to pkg/layout.
//
// # Construction
//
// Trees are built incrementally and validated once:
//
//	t := tree.New()
//	root := t.AddNode("")
//	a := t.AddNode("a")
//	if err := t.AddEdge(root, a); err != nil { ... }
//	if err := t.Validate(); err != nil { ... }
//
// [Tree.AddEdge] rejects duplicate parent assignments and edges that would
// close a cycle. [Tree.Validate] checks that exactly one root exists, that
// every other node is reachable from it, and assigns node depths.
//
// # Traversal
//
// [Tree.PreOrder] and [Tree.PostOrder] return lazy, restartable sequences
// implemented with explicit stacks, so arbitrarily deep trees traverse
// without recursion limits:
//
//	for id := range t.PostOrder() {
//	    // children of id have already been visited
//	}
//
// # Concurrency
//
// A Tree is safe for concurrent reads after Validate has returned nil.
// Construction is not safe for concurrent use.
package tree
