package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

func liveModel(t *testing.T, params layout.Params) (Model, *layout.Driver) {
	t.Helper()
	g, err := topo.Sample("minimal")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	driver := layout.NewDriver(layout.NewStore(params.Bounds), time.Millisecond)
	return NewModel("minimal", g, driver, params, "ocean"), driver
}

func TestTogglePhysicsSurfacesStartError(t *testing.T) {
	params := layout.DefaultParams(layout.Bounds{Width: 600, Height: 400})
	params.Repulsion = -1
	m, driver := liveModel(t, params)
	defer driver.Stop()

	m.togglePhysics()
	if driver.Running() {
		t.Fatal("driver should not start with invalid params")
	}
	if m.startErr == "" {
		t.Fatal("start failure not surfaced to the view")
	}
	if !strings.Contains(m.View(), m.startErr) {
		t.Error("start error missing from rendered view")
	}
}

func TestTogglePhysicsClearsErrorOnSuccess(t *testing.T) {
	params := layout.DefaultParams(layout.Bounds{Width: 600, Height: 400})
	m, driver := liveModel(t, params)
	defer driver.Stop()

	m.startErr = "stale message"
	m.togglePhysics()
	if !driver.Running() {
		t.Fatal("driver should start with valid params")
	}
	if m.startErr != "" {
		t.Errorf("stale error kept after a successful start: %q", m.startErr)
	}
}
