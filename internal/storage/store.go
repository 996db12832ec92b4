package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/topolab/fleetview/internal/layout"
)

// Store persists layout runs under a data directory, one directory per
// run: metadata.json, positions.csv (final node coordinates), and
// convergence.csv (mean displacement per tick).
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Topology   string             `json:"topology"`
	Timestamp  time.Time          `json:"timestamp"`
	Repulsion  float64            `json:"repulsion"`
	Attraction float64            `json:"attraction"`
	Centering  float64            `json:"centering"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Ticks      int                `json:"ticks"`
	Converged  bool               `json:"converged"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(topology string, params layout.Params, result *layout.Result, extraMetrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", topology, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Topology:   topology,
		Timestamp:  time.Now(),
		Repulsion:  params.Repulsion,
		Attraction: params.Attraction,
		Centering:  params.Centering,
		Width:      params.Bounds.Width,
		Height:     params.Bounds.Height,
		Ticks:      result.Ticks,
		Converged:  result.Converged,
		Metrics:    extraMetrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writePositions(runDir, result.Positions); err != nil {
		return "", err
	}
	if err := s.writeConvergence(runDir, result.Displacements); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writePositions(runDir string, positions layout.PositionMap) error {
	f, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"node", "x", "y"}); err != nil {
		return err
	}

	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := positions[id]
		row := []string{
			id,
			strconv.FormatFloat(p.X, 'f', 4, 64),
			strconv.FormatFloat(p.Y, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeConvergence(runDir string, displacements []float64) error {
	f, err := os.Create(filepath.Join(runDir, "convergence.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"tick", "mean_displacement"}); err != nil {
		return err
	}
	for i, d := range displacements {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(d, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPositions reads back the final node coordinates of a run.
func (s *Store) LoadPositions(runID string) (layout.PositionMap, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	positions := make(layout.PositionMap)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		positions[record[0]] = layout.Point{X: x, Y: y}
	}
	return positions, nil
}

// LoadConvergence reads back the per-tick displacement series.
func (s *Store) LoadConvergence(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "convergence.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		series = append(series, v)
	}
	return series, nil
}
