package metrics

import (
	"math"
	"testing"

	"github.com/topolab/fleetview/internal/layout"
)

func TestDisplacement(t *testing.T) {
	d := NewDisplacement()

	d.OnTick(layout.PositionMap{"a": {X: 0, Y: 0}, "b": {X: 10, Y: 0}}, 1)
	if d.Value() != 0 {
		t.Errorf("first observation should read 0, got %f", d.Value())
	}

	d.OnTick(layout.PositionMap{"a": {X: 3, Y: 4}, "b": {X: 10, Y: 0}}, 2)
	// a moved 5, b moved 0 -> mean 2.5
	if math.Abs(d.Value()-2.5) > 1e-9 {
		t.Errorf("expected mean displacement 2.5, got %f", d.Value())
	}

	d.Reset()
	if d.Value() != 0 {
		t.Error("reset should clear the value")
	}
}

func TestSpread(t *testing.T) {
	s := NewSpread()

	s.OnTick(layout.PositionMap{
		"a": {X: 0, Y: 0},
		"b": {X: 10, Y: 0},
	}, 1)
	// centroid (5,0); each node 5 away
	if math.Abs(s.Value()-5) > 1e-9 {
		t.Errorf("expected spread 5, got %f", s.Value())
	}

	s.OnTick(layout.PositionMap{}, 2)
	if s.Value() != 0 {
		t.Errorf("empty map should read 0, got %f", s.Value())
	}
}

func TestBoundsCompliance(t *testing.T) {
	bounds := layout.Bounds{Width: 600, Height: 400}
	b := NewBoundsCompliance(bounds)

	b.OnTick(layout.PositionMap{"a": {X: 300, Y: 200}}, 1)
	b.OnTick(layout.PositionMap{"a": {X: 5, Y: 200}}, 2) // inside margin band
	if b.Value() != 0.5 {
		t.Errorf("expected compliance 0.5, got %f", b.Value())
	}

	b.Reset()
	if b.Value() != 1.0 {
		t.Errorf("reset compliance should read 1.0, got %f", b.Value())
	}
}

func TestMetricsAreObservers(t *testing.T) {
	bounds := layout.Bounds{Width: 600, Height: 400}
	var _ layout.Observer = NewDisplacement()
	var _ layout.Observer = NewSpread()
	var _ layout.Observer = NewBoundsCompliance(bounds)
}
