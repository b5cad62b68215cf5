package layout

import (
	"strings"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
)

// Direction selects the presentation orientation of a computed layout.
type Direction string

// Supported layout directions.
const (
	// DirectionTB draws the root at the top, leaves extending downward.
	// This is the canonical frame; projection is the identity.
	DirectionTB Direction = "TB"
	// DirectionBT draws the root at the bottom.
	DirectionBT Direction = "BT"
	// DirectionLR draws the root at the left, leaves extending right.
	DirectionLR Direction = "LR"
	// DirectionRL draws the root at the right, leaves extending left.
	DirectionRL Direction = "RL"
	// DirectionRadial places the root at the origin with depth as radius
	// and canonical x mapped to an angle.
	DirectionRadial Direction = "RADIAL"
)

// Directions lists all valid directions in a stable order.
var Directions = []Direction{DirectionTB, DirectionBT, DirectionLR, DirectionRL, DirectionRadial}

// ParseDirection converts a case-insensitive string into a [Direction].
// Unknown values fail with an INVALID_DIRECTION error.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !d.valid() {
		return "", errs.New(errs.ErrCodeInvalidDirection,
			"unknown direction %q (must be one of: TB, BT, LR, RL, RADIAL)", s)
	}
	return d, nil
}

func (d Direction) valid() bool {
	switch d {
	case DirectionTB, DirectionBT, DirectionLR, DirectionRL, DirectionRadial:
		return true
	}
	return false
}

// String returns the canonical upper-case name of the direction.
func (d Direction) String() string { return string(d) }

// Config holds the explicit layout parameters. There is no global state;
// every Compute call receives its own Config.
type Config struct {
	// SiblingDistance is the minimum horizontal gap between adjacent
	// sibling nodes.
	SiblingDistance float64

	// SubtreeDistance is the minimum horizontal gap between nodes of
	// different subtrees at the same depth. Typically at least
	// SiblingDistance.
	SubtreeDistance float64

	// LevelDistance is the vertical gap between consecutive depths.
	LevelDistance float64

	// Direction is the presentation orientation.
	Direction Direction
}

// DefaultConfig returns unit distances and top-down orientation.
func DefaultConfig() Config {
	return Config{
		SiblingDistance: 1.0,
		SubtreeDistance: 1.0,
		LevelDistance:   1.0,
		Direction:       DirectionTB,
	}
}

// Validate checks the configuration eagerly, before layout starts.
// Non-positive distances fail with INVALID_DISTANCE, unknown directions
// with INVALID_DIRECTION.
func (c Config) Validate() error {
	if c.SiblingDistance <= 0 {
		return errs.New(errs.ErrCodeInvalidDistance, "sibling distance must be positive, got %v", c.SiblingDistance)
	}
	if c.SubtreeDistance <= 0 {
		return errs.New(errs.ErrCodeInvalidDistance, "subtree distance must be positive, got %v", c.SubtreeDistance)
	}
	if c.LevelDistance <= 0 {
		return errs.New(errs.ErrCodeInvalidDistance, "level distance must be positive, got %v", c.LevelDistance)
	}
	if !c.Direction.valid() {
		return errs.New(errs.ErrCodeInvalidDirection,
			"unknown direction %q (must be one of: TB, BT, LR, RL, RADIAL)", string(c.Direction))
	}
	return nil
}
