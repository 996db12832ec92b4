package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

func sweepFixture(t *testing.T) (topo.Graph, layout.Params, layout.RunConfig) {
	t.Helper()
	g, err := topo.Sample("minimal")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	base := layout.DefaultParams(layout.Bounds{Width: 600, Height: 400})
	return g, base, layout.RunConfig{MaxTicks: 300, Epsilon: 0.05}
}

func TestSearchPicksLowestScore(t *testing.T) {
	g, base, cfg := sweepFixture(t)

	gs := NewGridSearch(
		[]string{"repulsion", "attraction"},
		[][]float64{{200, 500, 900}, {0.02, 0.05}},
	)

	best, err := gs.Search(context.Background(), g, base, cfg, TicksToConverge)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if math.IsInf(best.Score, 1) {
		t.Fatal("no grid point converged")
	}
	if best.Values["repulsion"] == 0 || best.Values["attraction"] == 0 {
		t.Errorf("winning values not recorded: %v", best.Values)
	}
	if best.Params.Centering != base.Centering {
		t.Errorf("unswept parameter changed: %v", best.Params.Centering)
	}
}

func TestSearchRejectsUnknownParameter(t *testing.T) {
	g, base, cfg := sweepFixture(t)

	gs := NewGridSearch([]string{"gravity"}, [][]float64{{1, 2}})
	if _, err := gs.Search(context.Background(), g, base, cfg, TicksToConverge); err == nil {
		t.Fatal("expected error for unknown parameter")
	}
}

func TestSearchRejectsMismatchedRanges(t *testing.T) {
	g, base, cfg := sweepFixture(t)

	gs := NewGridSearch([]string{"repulsion", "attraction"}, [][]float64{{100}})
	if _, err := gs.Search(context.Background(), g, base, cfg, TicksToConverge); err == nil {
		t.Fatal("expected error for mismatched ranges")
	}
}

func TestNegativeSpreadPrefersWiderLayouts(t *testing.T) {
	g, base, cfg := sweepFixture(t)

	gs := NewGridSearch([]string{"repulsion"}, [][]float64{{50, 5000}})
	best, err := gs.Search(context.Background(), g, base, cfg, NegativeSpread)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if best.Values["repulsion"] != 5000 {
		t.Errorf("expected the strong-repulsion point to win, got %v", best.Values)
	}
}
