package layout

import (
	"context"
	"fmt"

	"github.com/topolab/fleetview/internal/topo"
)

// RunConfig bounds a headless convergence run.
type RunConfig struct {
	MaxTicks int
	// Epsilon is the mean per-node displacement below which the
	// layout counts as converged.
	Epsilon float64
}

// Result captures a finished headless run.
type Result struct {
	Positions     PositionMap
	Displacements []float64
	Ticks         int
	Converged     bool
}

// Run seeds a fresh layout and ticks it until the mean displacement
// drops under cfg.Epsilon or cfg.MaxTicks is reached. It is the
// batch-mode entry point; interactive callers use Driver instead.
func Run(ctx context.Context, nodes []topo.Node, edges []topo.Edge, params Params, cfg RunConfig) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxTicks <= 0 {
		return nil, fmt.Errorf("max ticks must be positive, got %d", cfg.MaxTicks)
	}
	if cfg.Epsilon < 0 {
		return nil, fmt.Errorf("epsilon must be >= 0, got %f", cfg.Epsilon)
	}

	store := NewStore(params.Bounds)
	store.Init(nodes, params.Bounds)

	result := &Result{
		Displacements: make([]float64, 0, cfg.MaxTicks),
	}

	for i := 0; i < cfg.MaxTicks; i++ {
		select {
		case <-ctx.Done():
			result.Positions = store.Snapshot()
			return result, ctx.Err()
		default:
		}

		before := store.Snapshot()
		store.Apply(Step(before, nodes, edges, params))
		after := store.Snapshot()

		result.Ticks++
		disp := meanDisplacement(before, after)
		result.Displacements = append(result.Displacements, disp)

		if disp < cfg.Epsilon {
			result.Converged = true
			break
		}
	}

	result.Positions = store.Snapshot()
	return result, nil
}

func meanDisplacement(before, after PositionMap) float64 {
	if len(after) == 0 {
		return 0
	}
	total := 0.0
	for id, p := range after {
		if prev, ok := before[id]; ok {
			total += prev.DistanceTo(p)
		}
	}
	return total / float64(len(after))
}
