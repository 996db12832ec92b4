package layout

import "math"

// Point is a 2-D position in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// DistanceTo returns the Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PositionMap maps node ids to their current positions. It is the
// single source of truth for "where is this node right now".
type PositionMap map[string]Point

// Clone returns an independent copy.
func (pm PositionMap) Clone() PositionMap {
	c := make(PositionMap, len(pm))
	for id, p := range pm {
		c[id] = p
	}
	return c
}

// Bounds is the viewport the layout must stay inside.
type Bounds struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Center returns the geometric center of the bounds.
func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}
