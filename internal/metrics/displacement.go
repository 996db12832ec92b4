package metrics

import "github.com/topolab/fleetview/internal/layout"

// Displacement tracks the mean per-node movement between consecutive
// ticks. It is the convergence signal: a settled layout reads near 0.
type Displacement struct {
	name string
	prev layout.PositionMap
	last float64
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) OnTick(positions layout.PositionMap, tick int) {
	if d.prev != nil && len(positions) > 0 {
		total := 0.0
		for id, p := range positions {
			if prev, ok := d.prev[id]; ok {
				total += prev.DistanceTo(p)
			}
		}
		d.last = total / float64(len(positions))
	}
	d.prev = positions.Clone()
}

func (d *Displacement) Value() float64 {
	return d.last
}

func (d *Displacement) Reset() {
	d.prev = nil
	d.last = 0
}
