package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

func testServer(t *testing.T) (*Server, *layout.Driver) {
	t.Helper()

	g, err := topo.Sample("minimal")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	bounds := layout.Bounds{Width: 600, Height: 400}
	driver := layout.NewDriver(layout.NewStore(bounds), 5*time.Millisecond)
	if err := driver.Start(g.Nodes, g.Edges, layout.DefaultParams(bounds)); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(driver.Stop)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("", g, driver, bounds, 5*time.Millisecond, log), driver
}

func TestSnapshotEndpoint(t *testing.T) {
	s, _ := testServer(t)

	rec := httptest.NewRecorder()
	s.handleSnapshot(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, id := range []string{"server-a", "server-b"} {
		if !strings.Contains(body, id) {
			t.Errorf("node %s missing from snapshot: %s", id, body)
		}
	}
}

func TestWebsocketFeed(t *testing.T) {
	s, _ := testServer(t)

	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var first Message
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read topology: %v", err)
	}
	if first.Type != "topology" {
		t.Fatalf("expected topology first, got %q", first.Type)
	}
	if first.Topology == nil || len(first.Topology.Nodes) != 2 {
		t.Fatalf("topology incomplete: %+v", first.Topology)
	}

	var frame Message
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Type != "frame" {
		t.Fatalf("expected frame, got %q", frame.Type)
	}
	if len(frame.Nodes) != 2 {
		t.Fatalf("expected 2 nodes per frame, got %d", len(frame.Nodes))
	}
	for _, n := range frame.Nodes {
		if n.X < 0 || n.X > 600 || n.Y < 0 || n.Y > 400 {
			t.Errorf("node %s out of bounds: (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}
