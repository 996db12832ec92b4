package layout

import (
	"context"
	"testing"

	"github.com/topolab/fleetview/internal/topo"
)

func TestRunConverges(t *testing.T) {
	bounds := Bounds{Width: 600, Height: 400}
	nodes := testNodes("a", "b")
	edges := []topo.Edge{{Source: "a", Target: "b", Weight: 1}}

	result, err := Run(context.Background(), nodes, edges, stepParams(bounds), RunConfig{
		MaxTicks: 500,
		Epsilon:  0.01,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Converged {
		t.Error("two linked nodes should reach equilibrium within 500 ticks")
	}
	if len(result.Positions) != 2 {
		t.Errorf("expected 2 positions, got %d", len(result.Positions))
	}
	if len(result.Displacements) != result.Ticks {
		t.Errorf("displacement history length %d, ticks %d", len(result.Displacements), result.Ticks)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	bounds := Bounds{Width: 600, Height: 400}
	nodes := testNodes("a")

	tests := []struct {
		name   string
		params Params
		cfg    RunConfig
	}{
		{"zero max ticks", stepParams(bounds), RunConfig{MaxTicks: 0, Epsilon: 0.01}},
		{"negative epsilon", stepParams(bounds), RunConfig{MaxTicks: 10, Epsilon: -1}},
		{"negative repulsion", Params{Repulsion: -1, Bounds: bounds}, RunConfig{MaxTicks: 10}},
		{"degenerate bounds", Params{Bounds: Bounds{Width: 10, Height: 10}}, RunConfig{MaxTicks: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), nodes, nil, tt.params, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	bounds := Bounds{Width: 600, Height: 400}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testNodes("a", "b"), nil, stepParams(bounds), RunConfig{MaxTicks: 100, Epsilon: 0})
	if err == nil {
		t.Error("expected context error")
	}
}
