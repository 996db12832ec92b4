package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/topolab/fleetview/internal/export"
	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

// Message is the wire envelope for the websocket feed. The first
// message on a connection is always a topology, then frames follow on
// the driver's cadence.
type Message struct {
	Type     string                `json:"type"`
	Topology *export.Snapshot      `json:"topology,omitempty"`
	Nodes    []export.SnapshotNode `json:"nodes,omitempty"`
	Tick     int                   `json:"tick,omitempty"`
}

// Server streams live layout frames over websockets. Each connection
// gets its own writer goroutine reading driver snapshots; the driver
// itself is shared.
type Server struct {
	addr     string
	graph    topo.Graph
	driver   *layout.Driver
	bounds   layout.Bounds
	interval time.Duration
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func New(addr string, graph topo.Graph, driver *layout.Driver, bounds layout.Bounds, interval time.Duration, log *slog.Logger) *Server {
	return &Server{
		addr:     addr,
		graph:    graph,
		driver:   driver,
		bounds:   bounds,
		interval: interval,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/snapshot", s.handleSnapshot)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", "addr", s.addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := export.GraphToJSON(s.graph, s.driver.Snapshot(), s.bounds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("ws upgrade failed", "err", err)
		return
	}
	defer c.Close()

	s.log.Info("client connected", "remote", r.RemoteAddr)
	conn := newSafeConn(c)

	snap := export.NewSnapshot(s.graph, s.driver.Snapshot(), s.bounds)
	if err := conn.WriteJSON(Message{Type: "topology", Topology: &snap}); err != nil {
		s.log.Error("topology write failed", "err", err)
		return
	}

	// Any client message, or a read error from the peer closing, ends
	// the session.
	done := make(chan struct{})
	go func() {
		_, _, _ = conn.ReadMessage()
		close(done)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			s.log.Info("client disconnected", "remote", r.RemoteAddr)
			return
		case <-ticker.C:
			msg := Message{
				Type:  "frame",
				Nodes: export.PositionsOnly(s.driver.Snapshot()),
				Tick:  s.driver.Ticks(),
			}
			if err := conn.WriteJSON(msg); err != nil {
				s.log.Info("frame write failed, dropping client", "remote", r.RemoteAddr, "err", err)
				return
			}
		}
	}
}

// safeConn serializes writes so the frame ticker and any future
// control-message writer cannot interleave. Reads get their own lock.
type safeConn struct {
	c       *websocket.Conn
	writeMu sync.Mutex
	readMu  sync.Mutex
}

func newSafeConn(c *websocket.Conn) *safeConn {
	return &safeConn{c: c}
}

func (s *safeConn) ReadMessage() (int, []byte, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	return s.c.ReadMessage()
}

func (s *safeConn) WriteJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.c.WriteMessage(websocket.TextMessage, data)
}
