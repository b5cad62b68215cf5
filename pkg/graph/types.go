package graph

import (
	"errors"
	"slices"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/layout"
	"github.com/wordgrove/wordgrove/pkg/tree"
)

// =============================================================================
// Document - Positioned Tree Serialization
// =============================================================================

// Document is the canonical serialization format for a positioned tree.
// Used for JSON files, API responses, storage, and caching.
//
// The format is human-readable and designed for round-trip fidelity:
// compute → export → re-import yields the same structure and positions.
type Document struct {
	Direction string      `json:"direction" bson:"direction"`
	Config    Config      `json:"config" bson:"config"`
	Bounds    layout.Rect `json:"bounds" bson:"bounds"`
	Nodes     []Node      `json:"nodes" bson:"nodes"`
	Edges     []Edge      `json:"edges" bson:"edges"`
}

// Config echoes the layout parameters a document was computed with.
type Config struct {
	SiblingDistance float64 `json:"sibling_distance" bson:"sibling_distance"`
	SubtreeDistance float64 `json:"subtree_distance" bson:"subtree_distance"`
	LevelDistance   float64 `json:"level_distance" bson:"level_distance"`
}

// =============================================================================
// Node - Positioned Tree Node
// =============================================================================

// Node is a tree node together with its projected position.
type Node struct {
	ID       int     `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Depth    int     `json:"depth" bson:"depth"`
	Terminal bool    `json:"terminal,omitempty" bson:"terminal,omitempty"` // Marks complete words in word tries
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
}

// =============================================================================
// Edge - Parent to Child Link
// =============================================================================

// Edge is a directed parent-to-child link between two node IDs.
type Edge struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// =============================================================================
// Tree ↔ Document Conversion
// =============================================================================

// FromLayout assembles a Document from a tree and its computed layout.
// Nodes are listed in pre-order and edges follow child order, so output is
// deterministic. terminals may be nil for trees that are not word tries.
func FromLayout(t *tree.Tree, res *layout.Result, terminals map[tree.ID]bool) Document {
	doc := Document{
		Direction: string(res.Config.Direction),
		Config: Config{
			SiblingDistance: res.Config.SiblingDistance,
			SubtreeDistance: res.Config.SubtreeDistance,
			LevelDistance:   res.Config.LevelDistance,
		},
		Bounds: res.Bounds,
		Nodes:  make([]Node, 0, t.Len()),
		Edges:  make([]Edge, 0, t.Len()-1),
	}

	for id := range t.PreOrder() {
		p := res.Positions[id]
		doc.Nodes = append(doc.Nodes, Node{
			ID:       int(id),
			Label:    t.Label(id),
			Depth:    t.Depth(id),
			Terminal: terminals[id],
			X:        p.X,
			Y:        p.Y,
		})
		for _, c := range t.Children(id) {
			doc.Edges = append(doc.Edges, Edge{From: int(id), To: int(c)})
		}
	}
	return doc
}

// ToTree rebuilds the tree structure encoded in a document, along with the
// terminal set. Positions are not carried over; recompute them with
// [layout.Compute]. Structural violations surface as STRUCTURE_* errors.
func (d Document) ToTree() (*tree.Tree, map[tree.ID]bool, error) {
	t := tree.New()

	ids := make(map[int]tree.ID, len(d.Nodes))
	terminals := make(map[tree.ID]bool)
	for _, n := range d.Nodes {
		if _, dup := ids[n.ID]; dup {
			return nil, nil, errs.New(errs.ErrCodeStructureBadNodeID, "duplicate node id %d", n.ID)
		}
		id := t.AddNode(n.Label)
		ids[n.ID] = id
		if n.Terminal {
			terminals[id] = true
		}
	}

	for _, e := range d.Edges {
		from, ok := ids[e.From]
		if !ok {
			return nil, nil, errs.New(errs.ErrCodeStructureBadNodeID, "edge references unknown node id %d", e.From)
		}
		to, ok := ids[e.To]
		if !ok {
			return nil, nil, errs.New(errs.ErrCodeStructureBadNodeID, "edge references unknown node id %d", e.To)
		}
		if err := t.AddEdge(from, to); err != nil {
			return nil, nil, structureError(err)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, nil, structureError(err)
	}
	return t, terminals, nil
}

// structureError translates the tree package's sentinel errors into coded
// STRUCTURE_* errors so callers (and the HTTP error mapping) can classify
// malformed documents without depending on pkg/tree.
func structureError(err error) error {
	switch {
	case errors.Is(err, tree.ErrDuplicateParent):
		return errs.Wrap(errs.ErrCodeDuplicateParent, err, "node has two parents")
	case errors.Is(err, tree.ErrCycle):
		return errs.Wrap(errs.ErrCodeStructureCycle, err, "edges form a cycle")
	case errors.Is(err, tree.ErrOrphanNode):
		return errs.Wrap(errs.ErrCodeOrphanNode, err, "node not connected to the root")
	case errors.Is(err, tree.ErrNoRoot):
		return errs.Wrap(errs.ErrCodeStructureNoRoot, err, "document has no root")
	case errors.Is(err, tree.ErrUnknownNode):
		return errs.Wrap(errs.ErrCodeStructureBadNodeID, err, "edge references unknown node")
	default:
		return err
	}
}

// LayoutConfig converts the document's echoed parameters back into an
// engine configuration for recomputation.
func (d Document) LayoutConfig() (layout.Config, error) {
	dir, err := layout.ParseDirection(d.Direction)
	if err != nil {
		return layout.Config{}, err
	}
	return layout.Config{
		SiblingDistance: d.Config.SiblingDistance,
		SubtreeDistance: d.Config.SubtreeDistance,
		LevelDistance:   d.Config.LevelDistance,
		Direction:       dir,
	}, nil
}

// Words reconstructs the word list encoded in a trie document by
// concatenating node labels from the root down to each terminal node.
// Results are sorted. Documents without terminal nodes yield nil.
func (d Document) Words() []string {
	parent := make(map[int]int, len(d.Edges))
	for _, e := range d.Edges {
		parent[e.To] = e.From
	}
	label := make(map[int]string, len(d.Nodes))
	for _, n := range d.Nodes {
		label[n.ID] = n.Label
	}

	var out []string
	for _, n := range d.Nodes {
		if !n.Terminal {
			continue
		}
		word := ""
		for id := n.ID; ; {
			word = label[id] + word
			p, ok := parent[id]
			if !ok {
				break
			}
			id = p
		}
		out = append(out, word)
	}
	slices.Sort(out)
	return out
}
