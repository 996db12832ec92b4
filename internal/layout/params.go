package layout

import "fmt"

const (
	// Margin keeps every node at least this many units inside the
	// bounds so it stays reachable by the pointer.
	Margin = 20.0

	// MinDistance floors the pair distance in the repulsion term.
	// Two coincident nodes would otherwise divide by zero.
	MinDistance = 1.0

	// SeedRadiusFraction sets the initial circle radius relative to
	// the smaller bounds dimension.
	SeedRadiusFraction = 0.35

	DefaultRepulsion  = 500.0
	DefaultAttraction = 0.05
	DefaultCentering  = 0.01
)

// Params holds the force strengths for one tick. Changing them between
// ticks takes effect immediately; no re-seed is required.
type Params struct {
	Repulsion  float64
	Attraction float64
	Centering  float64
	Bounds     Bounds

	// DragID names the node pinned under manual drag, "" for none.
	// The pinned node skips force computation and follows DragPos.
	DragID  string
	DragPos Point
}

// DefaultParams returns the reference tuning for the given bounds.
func DefaultParams(bounds Bounds) Params {
	return Params{
		Repulsion:  DefaultRepulsion,
		Attraction: DefaultAttraction,
		Centering:  DefaultCentering,
		Bounds:     bounds,
	}
}

// Validate rejects strengths or bounds the simulation cannot run with.
func (p Params) Validate() error {
	if p.Repulsion < 0 {
		return fmt.Errorf("repulsion must be >= 0, got %f", p.Repulsion)
	}
	if p.Attraction < 0 {
		return fmt.Errorf("attraction must be >= 0, got %f", p.Attraction)
	}
	if p.Centering < 0 {
		return fmt.Errorf("centering must be >= 0, got %f", p.Centering)
	}
	if p.Bounds.Width <= 2*Margin || p.Bounds.Height <= 2*Margin {
		return fmt.Errorf("bounds %gx%g leave no interior inside the %g-unit margin",
			p.Bounds.Width, p.Bounds.Height, Margin)
	}
	return nil
}
