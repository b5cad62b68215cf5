package layout

import (
	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/tree"
)

// Point is a position in presentation space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Result holds the outcome of one layout run. Both slices are indexed by
// [tree.ID].
type Result struct {
	// Canonical holds the top-down coordinates the engine computed,
	// before direction projection. Retained so callers can re-project
	// into other orientations without recomputing the layout.
	Canonical []Point

	// Positions holds the projected coordinates for Config.Direction.
	Positions []Point

	// Bounds is the bounding box of Positions.
	Bounds Rect

	// Config echoes the configuration the layout was computed with.
	Config Config
}

// Compute lays out a validated tree and projects it into cfg.Direction.
// The tree is never mutated. It fails with EMPTY_TREE for a tree with no
// nodes and with the Config validation errors for bad parameters; no
// partial result is returned on error.
func Compute(t *tree.Tree, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t == nil || t.Len() == 0 {
		return nil, errs.New(errs.ErrCodeEmptyTree, "cannot lay out an empty tree")
	}
	if t.Root() == tree.None {
		return nil, errs.New(errs.ErrCodeInvalidInput, "tree has not been validated")
	}

	w := newWalker(t, cfg)
	w.firstWalk(t.Root())
	canonical := w.secondWalk()

	positions, err := project(canonical, cfg.Direction, cfg.SiblingDistance)
	if err != nil {
		return nil, err
	}

	return &Result{
		Canonical: canonical,
		Positions: positions,
		Bounds:    bounds(positions),
		Config:    cfg,
	}, nil
}

// Project maps the canonical layout into another orientation without
// recomputing it. Unknown directions fail with INVALID_DIRECTION.
func (r *Result) Project(d Direction) ([]Point, error) {
	return project(r.Canonical, d, r.Config.SiblingDistance)
}

func bounds(pts []Point) Rect {
	b := Rect{MinX: pts[0].X, MaxX: pts[0].X, MinY: pts[0].Y, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}
