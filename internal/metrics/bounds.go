package metrics

import "github.com/topolab/fleetview/internal/layout"

// BoundsCompliance reports the fraction of observed ticks where every
// node stayed inside the margin-inset bounds. Anything under 1.0 means
// the store clamp has a hole.
type BoundsCompliance struct {
	name       string
	bounds     layout.Bounds
	violations int
	samples    int
}

func NewBoundsCompliance(bounds layout.Bounds) *BoundsCompliance {
	return &BoundsCompliance{
		name:   "bounds_compliance",
		bounds: bounds,
	}
}

func (b *BoundsCompliance) Name() string { return b.name }

func (b *BoundsCompliance) OnTick(positions layout.PositionMap, tick int) {
	b.samples++
	for _, p := range positions {
		if p.X < layout.Margin || p.X > b.bounds.Width-layout.Margin ||
			p.Y < layout.Margin || p.Y > b.bounds.Height-layout.Margin || !p.Finite() {
			b.violations++
			break
		}
	}
}

func (b *BoundsCompliance) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *BoundsCompliance) Reset() {
	b.violations = 0
	b.samples = 0
}
