package metrics

import "github.com/topolab/fleetview/internal/layout"

// Metric observes the position map after each tick and reduces it to a
// single value. Every Metric is a layout.Observer, so it can hang
// directly off a Driver.
type Metric interface {
	Name() string
	OnTick(positions layout.PositionMap, tick int)
	Value() float64
	Reset()
}
