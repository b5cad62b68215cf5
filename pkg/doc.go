// Package pkg provides the core libraries for wordgrove tree layout.
//
// # Overview
//
// Wordgrove turns word lists into tidy pictures of their shared-prefix tree.
// The pkg directory is organized into four main areas:
//
//  1. Domain logic - [tree], [words], [layout] (structure and positioning)
//  2. Serialization and output - [graph] (layout documents), [render] (SVG/PNG/PDF/DOT)
//  3. Infrastructure - [cache], [store], [errors], [observability]
//  4. Orchestration - [pipeline] (build → layout → render), [server] (HTTP API)
//
// # Architecture
//
// The typical data flow through wordgrove:
//
//	Word list
//	     ↓
//	[words] package (normalize + build the prefix trie)
//	     ↓
//	[layout] package (linear-time tidy positions + direction projection)
//	     ↓
//	[graph] package (positioned document, JSON round trip)
//	     ↓
//	[render] package (SVG, PNG, PDF, DOT output)
//
// # Quick Start
//
// Run the whole pipeline through a Runner:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Words:   []string{"cat", "car", "dog"},
//	    Formats: []string{"svg"},
//	})
//
// Or use the layers directly:
//
//	trie, _ := words.BuildTrie(words.Normalize(list), words.Options{})
//	res, _ := layout.Compute(trie.Tree, layout.DefaultConfig())
//	doc := graph.FromLayout(trie.Tree, res, trie.Terminals)
//
// # Main Packages
//
// ## Domain Logic
//
// [tree] - Rooted ordered tree with integer node ids, child order preserved,
// structural validation (single root, no orphans, no duplicate parents).
//
// [words] - Word list normalization and prefix-trie construction. Each trie
// edge carries one character; terminal nodes mark complete words.
//
// [layout] - Linear-time tidy tree layout with configurable sibling, subtree,
// and level spacing, plus projection into TB, BT, LR, RL, and RADIAL
// orientations.
//
// ## Serialization and Output
//
// [graph] - The positioned layout document: nodes with coordinates, edges,
// bounds, and the echoed configuration. Documents round-trip through JSON
// and rebuild into trees for re-layout.
//
// [render] - SVG rendering, Graphviz DOT export, and rsvg-convert based
// PDF/PNG conversion.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of layout documents and rendered
// artifacts. FileCache for the CLI, RedisCache for the server, NullCache
// for tests.
//
// [store] - Persistent layout records behind a small Store interface, with
// in-memory and MongoDB implementations.
//
// ## Orchestration
//
// [pipeline] - The build → layout → render pipeline shared by the CLI and
// the HTTP API, with per-stage caching and observability hooks.
//
// [server] - chi-based HTTP API for computing, storing, and rendering
// layouts.
package pkg
