package layout

import (
	"math"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
)

// project maps canonical top-down coordinates into the requested
// orientation. It is a pure function: the input slice is never modified.
//
// The radial mapping treats canonical x as an angle and canonical y
// (depth) as a radius. Angular slices are proportional to the horizontal
// span a subtree occupies in the canonical layout, which carries the
// engine's non-overlap guarantee over into angular sectors:
//
//	theta(x) = (x - xmin) · 2π / (span + siblingDistance)
//
// The extra siblingDistance in the denominator keeps the leftmost and
// rightmost nodes from meeting at the 0/2π seam.
func project(canonical []Point, d Direction, siblingDistance float64) ([]Point, error) {
	out := make([]Point, len(canonical))

	switch d {
	case DirectionTB:
		copy(out, canonical)
	case DirectionBT:
		for i, p := range canonical {
			out[i] = Point{X: p.X, Y: -p.Y}
		}
	case DirectionLR:
		for i, p := range canonical {
			out[i] = Point{X: p.Y, Y: p.X}
		}
	case DirectionRL:
		for i, p := range canonical {
			out[i] = Point{X: -p.Y, Y: p.X}
		}
	case DirectionRadial:
		xmin, xmax := canonical[0].X, canonical[0].X
		for _, p := range canonical[1:] {
			xmin = min(xmin, p.X)
			xmax = max(xmax, p.X)
		}
		unit := 2 * math.Pi / (xmax - xmin + siblingDistance)
		for i, p := range canonical {
			theta := (p.X - xmin) * unit
			out[i] = Point{X: p.Y * math.Cos(theta), Y: p.Y * math.Sin(theta)}
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidDirection,
			"unknown direction %q (must be one of: TB, BT, LR, RL, RADIAL)", string(d))
	}
	return out, nil
}
