// Package layout computes planar positions for rooted trees.
//
// # Overview
//
// The engine implements the Buchheim/Jünger/Leipert improvement of
// Walker's algorithm ("Improving Walker's Algorithm to Run in Linear
// Time", GD 2002): one post-order walk assigns preliminary x positions
// and resolves subtree collisions by walking the inside contours of
// adjacent subtrees, one pre-order walk accumulates the deferred shift
// modifiers into final coordinates. Thread shortcuts let contour walks
// jump across subtrees of unequal height, keeping the whole run O(n).
//
// Layout is always computed in a canonical top-down frame: x grows to the
// right, y grows with depth (y = depth · LevelDistance). Presentation
// orientation is a pure post-hoc transform - see [Result.Project] and
// [Direction].
//
// # Usage
//
//	cfg := layout.DefaultConfig()
//	cfg.Direction = layout.DirectionLR
//	res, err := layout.Compute(t, cfg)
//	if err != nil { ... }
//	for id := range t.PreOrder() {
//	    p := res.Positions[id]
//	    // draw node at (p.X, p.Y)
//	}
//
// # Guarantees
//
// For a successful run:
//
//   - Nodes at the same depth share a canonical y.
//   - Adjacent siblings are at least SiblingDistance apart; nodes of
//     different subtrees at the same depth at least SubtreeDistance.
//   - Every parent sits at the midpoint of its first and last child.
//   - The layout is deterministic and as narrow as the above allows.
//
// The engine never mutates the tree: all scratch state (prelim, mod,
// shift, change, thread, ancestor) lives in a per-run side table indexed
// by node ID, so one tree can be laid out repeatedly with different
// configurations.
//
// # Errors
//
// [Config.Validate] rejects non-positive distances (INVALID_DISTANCE) and
// unknown directions (INVALID_DIRECTION). [Compute] rejects empty trees
// (EMPTY_TREE) before any traversal begins. No partial layouts are ever
// returned.
package layout
