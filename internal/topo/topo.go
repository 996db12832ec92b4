package topo

// DefaultRadius is the visual node radius used when a node does not
// specify one. The layout engine treats it as a label-offset hint only.
const DefaultRadius = 8.0

// Node is one element of the fleet topology. Kind is an opaque label
// consumed by renderers; the layout engine never inspects it.
type Node struct {
	ID     string  `yaml:"id" json:"id"`
	Kind   string  `yaml:"kind" json:"kind"`
	Radius float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// Edge is an unordered connection between two nodes. Weight scales
// spring stiffness during layout and defaults to 1.
type Edge struct {
	Source string  `yaml:"source" json:"source"`
	Target string  `yaml:"target" json:"target"`
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
	Kind   string  `yaml:"kind,omitempty" json:"kind,omitempty"`
}

type Graph struct {
	Nodes []Node `yaml:"nodes" json:"nodes"`
	Edges []Edge `yaml:"edges" json:"edges"`
}

// Normalize returns a copy of g with default weights and radii filled
// in. Edge endpoints are left as supplied; the layout engine skips
// edges whose endpoints it cannot resolve.
func (g Graph) Normalize() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		if n.Radius <= 0 {
			n.Radius = DefaultRadius
		}
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		if e.Weight <= 0 {
			e.Weight = 1
		}
		out.Edges[i] = e
	}
	return out
}

// HasNode reports whether id names a node in the graph.
func (g Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// NodeIDs returns the node ids in input order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// ValidEdges returns the edges whose endpoints both resolve to nodes in
// the graph. Dangling edges are dropped, never reported as errors: a
// half-deployed fleet still has to lay out.
func (g Graph) ValidEdges() []Edge {
	known := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		known[n.ID] = true
	}
	valid := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if known[e.Source] && known[e.Target] {
			valid = append(valid, e)
		}
	}
	return valid
}
