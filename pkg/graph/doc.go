// Package graph provides serialization types for positioned trees.
//
// This package defines the canonical wire format for wordgrove's layout
// data, used for JSON files, API responses, storage, and caching.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Document]: Serialization type (this package)
//   - pkg/tree.Tree: Internal tree representation
//   - pkg/layout.Result: Internal layout (canonical and projected positions)
//
// Use [FromLayout] and [Document.ToTree] to convert between them.
//
// # Document Format
//
// Documents use a simple node-link JSON format with positions inlined:
//
//	{
//	  "direction": "TB",
//	  "config": {"sibling_distance": 1, "subtree_distance": 1, "level_distance": 1},
//	  "bounds": {"min_x": 0, "max_x": 1.5, "min_y": 0, "max_y": 2},
//	  "nodes": [{"id": 0, "label": "", "depth": 0, "x": 0.75, "y": 0}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Common operations:
//
//	doc := graph.FromLayout(tree, result, trie.Terminals) // Tree → Document
//	graph.WriteFile(doc, "layout.json")                   // Document → File
//	doc, _ = graph.ReadFile("layout.json")                // File → Document
//	data, _ := graph.Marshal(doc)                         // Document → []byte
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
