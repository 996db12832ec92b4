package layout

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/topolab/fleetview/internal/topo"
)

// DefaultTickInterval is the reference physics cadence.
const DefaultTickInterval = 50 * time.Millisecond

// Observer is notified after every completed tick. Observers run on
// the ticking goroutine and must return quickly.
type Observer interface {
	OnTick(positions PositionMap, tick int)
}

// Driver owns the run/stop lifecycle of the simulation. It ticks Step
// on a trailing schedule: the next tick is armed only after the
// previous one returns, so ticks never overlap and a slow tick simply
// delays the next.
type Driver struct {
	store    *Store
	interval time.Duration

	mu        sync.Mutex
	nodes     []topo.Node
	edges     []topo.Edge
	params    Params
	dragID    string
	dragPos   Point
	running   bool
	stop      chan struct{}
	done      chan struct{}
	ticks     int
	observers []Observer
	nodeKey   string
}

// NewDriver creates a driver over store. A non-positive interval
// selects DefaultTickInterval.
func NewDriver(store *Store, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Driver{store: store, interval: interval}
}

// AddObserver registers o for tick notifications.
func (d *Driver) AddObserver(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Start begins ticking. Calling Start while running is a no-op. The
// store is seeded on first start and whenever the node-id set differs
// from the previous one.
func (d *Driver) Start(nodes []topo.Node, edges []topo.Edge, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}

	d.nodes = nodes
	d.edges = edges
	d.params = params

	key := nodeSetKey(nodes)
	if key != d.nodeKey || d.store.Len() == 0 {
		d.store.Init(nodes, params.Bounds)
		d.nodeKey = key
	}

	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	stop, done := d.stop, d.done
	d.mu.Unlock()

	go d.loop(stop, done)
	return nil
}

// Stop halts ticking. It returns only after any in-flight tick has
// completed, so no partial tick lands afterwards. The last computed
// positions remain as the frozen state.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()

	close(stop)
	<-done
}

// Running reports whether the driver is ticking.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Reseed discards the current layout and re-seeds all nodes on the
// initial circle. This is the explicit layout-reset path; the only
// other reseed trigger is a change in the node-id set.
func (d *Driver) Reseed(nodes []topo.Node, bounds Bounds) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nodes = nodes
	d.params.Bounds = bounds
	d.nodeKey = nodeSetKey(nodes)
	d.store.Init(nodes, bounds)
}

// SetGraph swaps the node and edge set. A changed node-id set re-seeds
// the layout; an unchanged one keeps positions evolving in place.
func (d *Driver) SetGraph(nodes []topo.Node, edges []topo.Edge) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edges = edges
	key := nodeSetKey(nodes)
	if key != d.nodeKey {
		d.nodes = nodes
		d.nodeKey = key
		d.store.Init(nodes, d.params.Bounds)
		return
	}
	d.nodes = nodes
}

// SetParams swaps the force strengths. Takes effect on the next tick.
func (d *Driver) SetParams(params Params) {
	d.mu.Lock()
	defer d.mu.Unlock()
	params.Bounds = d.params.Bounds
	d.params = params
}

// Params returns the current force strengths.
func (d *Driver) Params() Params {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.params
}

// SetDragTarget pins id to pos until cleared. While the driver is
// stopped the move is applied immediately, so manual drags still work
// with physics off.
func (d *Driver) SetDragTarget(id string, pos Point) {
	d.mu.Lock()
	d.dragID = id
	d.dragPos = pos
	running := d.running
	d.mu.Unlock()

	if !running && id != "" {
		d.store.Apply(PositionMap{id: pos})
	}
}

// ClearDragTarget returns the pinned node, if any, to force-driven
// motion on the next tick.
func (d *Driver) ClearDragTarget() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dragID = ""
	d.dragPos = Point{}
}

// Snapshot returns a copy of the current position map.
func (d *Driver) Snapshot() PositionMap {
	return d.store.Snapshot()
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

func (d *Driver) loop(stop, done chan struct{}) {
	defer close(done)
	timer := time.NewTimer(d.interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			d.Tick()
			timer.Reset(d.interval)
		}
	}
}

// Tick runs one simulation step. It never panics out: a poisoned tick
// leaves positions as they were instead of taking the driver down.
func (d *Driver) Tick() {
	defer func() {
		_ = recover()
	}()

	d.mu.Lock()
	nodes := d.nodes
	edges := d.edges
	params := d.params
	params.DragID = d.dragID
	params.DragPos = d.dragPos
	d.ticks++
	tick := d.ticks
	observers := d.observers
	d.mu.Unlock()

	// The delta is tied to the seed generation it was computed from;
	// a reseed landing mid-tick invalidates it rather than being
	// overwritten by it.
	before, gen := d.store.SnapshotGen()
	delta := Step(before, nodes, edges, params)
	d.store.ApplyIfCurrent(gen, delta)

	if len(observers) > 0 {
		snap := d.store.Snapshot()
		for _, o := range observers {
			o.OnTick(snap, tick)
		}
	}
}

func nodeSetKey(nodes []topo.Node) string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}
