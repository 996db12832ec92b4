package metrics

import "github.com/topolab/fleetview/internal/layout"

// Spread is the mean node distance from the layout centroid. It shows
// whether a tuning change is packing or scattering the diagram.
type Spread struct {
	name string
	last float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) OnTick(positions layout.PositionMap, tick int) {
	if len(positions) == 0 {
		s.last = 0
		return
	}

	var cx, cy float64
	for _, p := range positions {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(positions))
	centroid := layout.Point{X: cx / n, Y: cy / n}

	total := 0.0
	for _, p := range positions {
		total += centroid.DistanceTo(p)
	}
	s.last = total / n
}

func (s *Spread) Value() float64 {
	return s.last
}

func (s *Spread) Reset() {
	s.last = 0
}
