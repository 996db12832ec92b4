package topo

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b", Radius: 15}},
		Edges: []Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "b", Weight: 3},
			{Source: "a", Target: "b", Weight: -2},
		},
	}

	n := g.Normalize()

	if n.Nodes[0].Radius != DefaultRadius {
		t.Errorf("expected default radius %.1f, got %.1f", DefaultRadius, n.Nodes[0].Radius)
	}
	if n.Nodes[1].Radius != 15 {
		t.Errorf("explicit radius overwritten: %.1f", n.Nodes[1].Radius)
	}
	if n.Edges[0].Weight != 1 {
		t.Errorf("expected default weight 1, got %.1f", n.Edges[0].Weight)
	}
	if n.Edges[1].Weight != 3 {
		t.Errorf("explicit weight overwritten: %.1f", n.Edges[1].Weight)
	}
	if n.Edges[2].Weight != 1 {
		t.Errorf("non-positive weight should default to 1, got %.1f", n.Edges[2].Weight)
	}

	// Normalize returns a copy.
	if g.Nodes[0].Radius != 0 {
		t.Error("normalize mutated its receiver")
	}
}

func TestValidEdges(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "ghost"},
			{Source: "ghost", Target: "b"},
		},
	}

	valid := g.ValidEdges()
	if len(valid) != 1 {
		t.Fatalf("expected 1 valid edge, got %d", len(valid))
	}
	if valid[0].Source != "a" || valid[0].Target != "b" {
		t.Errorf("wrong edge survived: %+v", valid[0])
	}
}

func TestSample(t *testing.T) {
	for _, name := range SampleNames() {
		g, err := Sample(name)
		if err != nil {
			t.Fatalf("sample %s: %v", name, err)
		}
		if len(g.Nodes) == 0 {
			t.Errorf("sample %s has no nodes", name)
		}
		for _, e := range g.Edges {
			if e.Weight <= 0 {
				t.Errorf("sample %s: edge %s-%s not normalized", name, e.Source, e.Target)
			}
		}
	}

	if _, err := Sample("nope"); err == nil {
		t.Error("expected error for unknown topology")
	}
}
