package viz

import (
	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

// DrawGraph renders the topology onto the canvas from a position
// snapshot. Layout coordinates scale to the canvas sub-pixel grid;
// edges draw first so node markers sit on top. A non-empty selectedID
// gets a highlight ring.
func DrawGraph(c *Canvas, g topo.Graph, positions layout.PositionMap, bounds layout.Bounds, selectedID string) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	subW := float64(c.Width * 2)
	subH := float64(c.Height * 4)
	sx := func(x float64) int { return int(x / bounds.Width * (subW - 1)) }
	sy := func(y float64) int { return int(y / bounds.Height * (subH - 1)) }

	for _, e := range g.Edges {
		from, ok := positions[e.Source]
		if !ok {
			continue
		}
		to, ok := positions[e.Target]
		if !ok {
			continue
		}
		c.DrawLine(sx(from.X), sy(from.Y), sx(to.X), sy(to.Y))
	}

	for _, n := range g.Nodes {
		p, ok := positions[n.ID]
		if !ok {
			continue
		}
		radius := 1
		if n.Radius > topo.DefaultRadius {
			radius = 2
		}
		c.DrawMarker(sx(p.X), sy(p.Y), radius)
		if n.ID == selectedID {
			c.DrawRing(sx(p.X), sy(p.Y), radius+2)
		}
	}
}
