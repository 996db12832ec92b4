package layout

import (
	"math"
	"sync"

	"github.com/topolab/fleetview/internal/topo"
)

// Store owns the authoritative position map. All access goes through
// its mutex so the ticking goroutine, the drag setter, and renderer
// snapshot reads never race.
type Store struct {
	mu        sync.RWMutex
	bounds    Bounds
	positions PositionMap
	gen       uint64
}

func NewStore(bounds Bounds) *Store {
	return &Store{
		bounds:    bounds,
		positions: make(PositionMap),
	}
}

// Init discards any existing layout and seeds every node evenly on a
// circle centered in bounds, radius 35% of the smaller dimension.
// Placement follows input node order, so the same node order always
// produces the same seed.
func (s *Store) Init(nodes []topo.Node, bounds Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bounds = bounds
	s.positions = make(PositionMap, len(nodes))
	s.gen++

	center := bounds.Center()
	radius := SeedRadiusFraction * math.Min(bounds.Width, bounds.Height)

	for i, n := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		s.positions[n.ID] = clampPoint(Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}, bounds)
	}
}

// Snapshot returns an independent copy of the position map.
func (s *Store) Snapshot() PositionMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions.Clone()
}

// SnapshotGen returns a snapshot together with the seed generation it
// belongs to. Init bumps the generation, so a delta computed from this
// snapshot can be checked against a reseed that landed in between.
func (s *Store) SnapshotGen() (PositionMap, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions.Clone(), s.gen
}

// Apply merges delta into the map, clamping every coordinate into the
// margin-inset interior. Ids the store does not know are ignored, and
// a non-finite coordinate leaves that node's position unchanged rather
// than poisoning the map.
func (s *Store) Apply(delta PositionMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merge(delta)
}

// ApplyIfCurrent merges delta only if gen still matches the seed
// generation, and reports whether it did. A delta computed before a
// reseed is dropped instead of overwriting the fresh seed.
func (s *Store) ApplyIfCurrent(gen uint64, delta PositionMap) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.merge(delta)
	return true
}

func (s *Store) merge(delta PositionMap) {
	for id, p := range delta {
		if _, ok := s.positions[id]; !ok {
			continue
		}
		if !p.Finite() {
			continue
		}
		s.positions[id] = clampPoint(p, s.bounds)
	}
}

// Bounds returns the store's current bounds.
func (s *Store) Bounds() Bounds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// Len returns the number of positioned nodes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

func clampPoint(p Point, b Bounds) Point {
	return Point{
		X: clamp(p.X, Margin, b.Width-Margin),
		Y: clamp(p.Y, Margin, b.Height-Margin),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
