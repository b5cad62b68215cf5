package tree

import (
	"errors"
	"iter"
)

var (
	// ErrUnknownNode is returned by [Tree.AddEdge] when either endpoint
	// does not exist in the tree.
	ErrUnknownNode = errors.New("unknown node ID")

	// ErrDuplicateParent is returned by [Tree.AddEdge] when the child
	// already has a parent. Every non-root node has exactly one parent.
	ErrDuplicateParent = errors.New("node already has a parent")

	// ErrCycle is returned by [Tree.AddEdge] when the edge would make a
	// node its own ancestor.
	ErrCycle = errors.New("edge would create a cycle")

	// ErrNoRoot is returned by [Tree.Validate] when the tree has no nodes.
	ErrNoRoot = errors.New("tree has no root")

	// ErrOrphanNode is returned by [Tree.Validate] when a node is not
	// reachable from the root. Orphans come from adding nodes without
	// ever connecting them.
	ErrOrphanNode = errors.New("node not reachable from root")
)

// ID identifies a node within its owning [Tree]. IDs are dense indices
// starting at 0 in insertion order, which makes them suitable as slice
// indices for per-node side tables.
type ID int

// None is the null node ID, used for absent parent references.
const None ID = -1

// Node is a single vertex of the tree. Fields are fixed at construction
// time; Depth is assigned by [Tree.Validate].
type Node struct {
	ID       ID
	Label    string
	Parent   ID   // None for the root
	Children []ID // ordered; order determines sibling order in layout
	Depth    int  // 0 at the root, assigned by Validate
	Number   int  // index among siblings, fixed when the edge is added
}

// Tree is a rooted ordered tree backed by a node arena.
// The zero value is not usable - use [New].
type Tree struct {
	nodes []Node
	root  ID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: None}
}

// AddNode appends a node with the given label and returns its ID.
// The node is a root candidate until an edge makes it someone's child.
func (t *Tree) AddNode(label string) ID {
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, Node{ID: id, Label: label, Parent: None})
	return id
}

// AddChild adds a new node with the given label as the last child of parent.
func (t *Tree) AddChild(parent ID, label string) (ID, error) {
	id := t.AddNode(label)
	if err := t.AddEdge(parent, id); err != nil {
		return None, err
	}
	return id, nil
}

// AddEdge makes child the last child of parent.
// It fails with [ErrUnknownNode] for invalid IDs, [ErrDuplicateParent] if
// the child is already attached, and [ErrCycle] if child is an ancestor of
// parent (including child == parent).
func (t *Tree) AddEdge(parent, child ID) error {
	if !t.valid(parent) || !t.valid(child) {
		return ErrUnknownNode
	}
	if t.nodes[child].Parent != None {
		return ErrDuplicateParent
	}
	if parent == child {
		return ErrCycle
	}
	// Walk up from parent; reaching child means the edge closes a cycle.
	// A childless node cannot be anyone's ancestor, so the walk is only
	// needed when attaching an existing subtree. This keeps chain-shaped
	// construction linear instead of quadratic.
	if len(t.nodes[child].Children) > 0 {
		for p := parent; p != None; p = t.nodes[p].Parent {
			if p == child {
				return ErrCycle
			}
		}
	}
	t.nodes[child].Parent = parent
	t.nodes[child].Number = len(t.nodes[parent].Children)
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	return nil
}

// Validate checks structural invariants and assigns node depths.
// It must be called once after construction and before layout:
//   - exactly one node without a parent (the root), else [ErrNoRoot]
//     or [ErrOrphanNode]
//   - every node reachable from the root, else [ErrOrphanNode]
//
// Cycles and duplicate parents are rejected by [Tree.AddEdge] already, so
// a tree that was built through this API and passes Validate satisfies the
// full acyclic/unique-parent invariant.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return ErrNoRoot
	}

	root := None
	for i := range t.nodes {
		if t.nodes[i].Parent != None {
			continue
		}
		if root != None {
			// A second parentless node is unreachable from the root.
			return ErrOrphanNode
		}
		root = t.nodes[i].ID
	}
	if root == None {
		return ErrNoRoot
	}
	t.root = root

	// Iterative DFS: assign depths and count reachable nodes.
	seen := 0
	stack := []ID{root}
	t.nodes[root].Depth = 0
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seen++
		for _, c := range t.nodes[id].Children {
			t.nodes[c].Depth = t.nodes[id].Depth + 1
			stack = append(stack, c)
		}
	}
	if seen != len(t.nodes) {
		return ErrOrphanNode
	}
	return nil
}

// Root returns the root node ID, or None before a successful Validate.
func (t *Tree) Root() ID { return t.root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given ID.
func (t *Tree) Node(id ID) Node { return t.nodes[id] }

// Label returns the node's display label.
func (t *Tree) Label(id ID) string { return t.nodes[id].Label }

// Parent returns the node's parent ID, None for the root.
func (t *Tree) Parent(id ID) ID { return t.nodes[id].Parent }

// Children returns the ordered child IDs of the node.
// The returned slice is owned by the tree and must not be modified.
func (t *Tree) Children(id ID) []ID { return t.nodes[id].Children }

// IsLeaf reports whether the node has no children.
func (t *Tree) IsLeaf(id ID) bool { return len(t.nodes[id].Children) == 0 }

// Depth returns the node's level, 0 at the root.
// Valid only after [Tree.Validate].
func (t *Tree) Depth(id ID) int { return t.nodes[id].Depth }

// Number returns the node's index among its siblings (0-based).
func (t *Tree) Number(id ID) int { return t.nodes[id].Number }

// Height returns the maximum depth over all nodes plus one, or 0 for an
// empty tree. Valid only after [Tree.Validate].
func (t *Tree) Height() int {
	h := 0
	for i := range t.nodes {
		if d := t.nodes[i].Depth + 1; d > h {
			h = d
		}
	}
	return h
}

// PreOrder returns a restartable sequence of node IDs in pre-order
// (parents before children, siblings left to right).
func (t *Tree) PreOrder() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if t.root == None {
			return
		}
		stack := []ID{t.root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			kids := t.nodes[id].Children
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}
}

// PostOrder returns a restartable sequence of node IDs in post-order
// (children before parents, siblings left to right).
func (t *Tree) PostOrder() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if t.root == None {
			return
		}
		type frame struct {
			id   ID
			next int // index of the next child to descend into
		}
		stack := []frame{{id: t.root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			kids := t.nodes[top.id].Children
			if top.next < len(kids) {
				child := kids[top.next]
				top.next++
				stack = append(stack, frame{id: child})
				continue
			}
			if !yield(top.id) {
				return
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func (t *Tree) valid(id ID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
