package sweep

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/metrics"
	"github.com/topolab/fleetview/internal/topo"
)

// Objective scores a finished layout run. Lower is better.
type Objective func(result *layout.Result, bounds layout.Bounds) float64

// TicksToConverge favors parameter sets that settle quickly. Runs that
// never converge score Inf.
func TicksToConverge(result *layout.Result, bounds layout.Bounds) float64 {
	if !result.Converged {
		return math.Inf(1)
	}
	return float64(result.Ticks)
}

// NegativeSpread favors layouts that use the available area. Spread is
// negated so the shared lower-is-better convention holds.
func NegativeSpread(result *layout.Result, bounds layout.Bounds) float64 {
	spread := metrics.NewSpread()
	spread.OnTick(result.Positions, result.Ticks)
	return -spread.Value()
}

// Candidate is one evaluated point of the grid.
type Candidate struct {
	Values map[string]float64
	Params layout.Params
	Score  float64
	Ticks  int
}

// GridSearch sweeps force parameters over a cartesian grid. Parameter
// names are "repulsion", "attraction", and "centering"; anything else
// fails at Search time rather than silently.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid point as an independent headless layout and
// returns the best-scoring candidate. Runs execute concurrently; each
// gets its own store so they share nothing.
func (g *GridSearch) Search(ctx context.Context, graph topo.Graph, base layout.Params, cfg layout.RunConfig, objective Objective) (Candidate, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Candidate{}, fmt.Errorf("got %d param names but %d ranges", len(g.paramNames), len(g.ranges))
	}

	var grid []map[string]float64
	g.expand(0, map[string]float64{}, &grid)
	if len(grid) == 0 {
		return Candidate{}, fmt.Errorf("empty grid")
	}

	candidates := make([]Candidate, len(grid))
	errs := make([]error, len(grid))

	var wg sync.WaitGroup
	for i, values := range grid {
		wg.Add(1)
		go func(idx int, values map[string]float64) {
			defer wg.Done()

			params, err := applyValues(base, values)
			if err != nil {
				errs[idx] = err
				return
			}

			result, err := layout.Run(ctx, graph.Nodes, graph.Edges, params, cfg)
			if err != nil {
				errs[idx] = err
				return
			}

			candidates[idx] = Candidate{
				Values: values,
				Params: params,
				Score:  objective(result, params.Bounds),
				Ticks:  result.Ticks,
			}
		}(i, values)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Candidate{}, err
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best, nil
}

func (g *GridSearch) expand(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		point := make(map[string]float64, len(current))
		for k, v := range current {
			point[k] = v
		}
		*out = append(*out, point)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.expand(depth+1, current, out)
	}
	delete(current, name)
}

func applyValues(base layout.Params, values map[string]float64) (layout.Params, error) {
	params := base
	for name, val := range values {
		switch name {
		case "repulsion":
			params.Repulsion = val
		case "attraction":
			params.Attraction = val
		case "centering":
			params.Centering = val
		default:
			return layout.Params{}, fmt.Errorf("unknown sweep parameter: %s", name)
		}
	}
	return params, nil
}
