package export

import (
	"encoding/json"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

// Snapshot is the JSON wire form of a layout. Nodes carry their
// computed positions inline so a consumer needs no second lookup.
type Snapshot struct {
	Nodes  []SnapshotNode `json:"nodes"`
	Edges  []topo.Edge    `json:"edges"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
}

type SnapshotNode struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// NewSnapshot pairs topology with positions. Nodes without a position
// are skipped; node order follows the topology.
func NewSnapshot(g topo.Graph, positions layout.PositionMap, bounds layout.Bounds) Snapshot {
	snap := Snapshot{
		Nodes:  make([]SnapshotNode, 0, len(g.Nodes)),
		Edges:  g.ValidEdges(),
		Width:  bounds.Width,
		Height: bounds.Height,
	}
	for _, n := range g.Nodes {
		p, ok := positions[n.ID]
		if !ok {
			continue
		}
		snap.Nodes = append(snap.Nodes, SnapshotNode{ID: n.ID, Kind: n.Kind, X: p.X, Y: p.Y})
	}
	return snap
}

// PositionsOnly builds a snapshot from bare positions with no
// topology, in sorted id order. The server uses this for per-tick
// frames where the topology was already sent.
func PositionsOnly(positions layout.PositionMap) []SnapshotNode {
	nodes := make([]SnapshotNode, 0, len(positions))
	for _, id := range sortedIDs(positions) {
		p := positions[id]
		nodes = append(nodes, SnapshotNode{ID: id, X: p.X, Y: p.Y})
	}
	return nodes
}

// GraphToJSON marshals a snapshot with indentation for files.
func GraphToJSON(g topo.Graph, positions layout.PositionMap, bounds layout.Bounds) ([]byte, error) {
	return json.MarshalIndent(NewSnapshot(g, positions, bounds), "", "  ")
}
