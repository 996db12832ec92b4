package layout

import (
	"math"

	"github.com/topolab/fleetview/internal/topo"
)

// Step computes one iteration of force application and returns the
// updated positions. It is pure with respect to its inputs: positions
// is not mutated, and the same inputs always produce the same output.
//
// Per node, three forces sum: inverse-square repulsion from every other
// node (distance floored at MinDistance), spring attraction along each
// incident edge scaled by edge weight, and a weak pull toward the
// bounds center. The sum is added directly to the position, an
// over-damped first-order Euler update with no velocity state.
//
// The drag-pinned node, if any, skips forces entirely and takes
// params.DragPos. Edges naming unknown ids contribute nothing. A node
// whose update would be non-finite keeps its previous position.
func Step(positions PositionMap, nodes []topo.Node, edges []topo.Edge, params Params) PositionMap {
	next := make(PositionMap, len(positions))
	center := params.Bounds.Center()

	for _, node := range nodes {
		pos, ok := positions[node.ID]
		if !ok {
			// Not seeded yet; nothing to integrate from.
			continue
		}

		if node.ID == params.DragID {
			next[node.ID] = params.DragPos
			continue
		}

		var fx, fy float64

		// Repulsion from every other node.
		for _, other := range nodes {
			if other.ID == node.ID {
				continue
			}
			otherPos, ok := positions[other.ID]
			if !ok {
				continue
			}
			dx := pos.X - otherPos.X
			dy := pos.Y - otherPos.Y
			d := math.Max(math.Sqrt(dx*dx+dy*dy), MinDistance)
			f := params.Repulsion / (d * d)
			fx += f * dx / d
			fy += f * dy / d
		}

		// Spring attraction along incident edges.
		for _, edge := range edges {
			otherID := ""
			switch node.ID {
			case edge.Source:
				otherID = edge.Target
			case edge.Target:
				otherID = edge.Source
			default:
				continue
			}
			otherPos, ok := positions[otherID]
			if !ok {
				continue
			}
			dx := otherPos.X - pos.X
			dy := otherPos.Y - pos.Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d == 0 {
				// Direction undefined; skip this edge for the tick.
				continue
			}
			weight := edge.Weight
			if weight <= 0 {
				weight = 1
			}
			f := d * params.Attraction * weight
			fx += f * dx / d
			fy += f * dy / d
		}

		// Centering keeps disconnected components on screen.
		fx += params.Centering * (center.X - pos.X)
		fy += params.Centering * (center.Y - pos.Y)

		updated := Point{X: pos.X + fx, Y: pos.Y + fy}
		if !updated.Finite() {
			updated = pos
		}
		next[node.ID] = updated
	}

	return next
}
