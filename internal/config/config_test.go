package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Topology != "datacenter" {
		t.Errorf("expected topology datacenter, got %s", cfg.Topology)
	}
	if cfg.TickMs <= 0 {
		t.Error("tick interval should be positive")
	}
	if cfg.Forces.Repulsion <= 0 {
		t.Error("default repulsion should be positive")
	}
	if err := cfg.LayoutParams().Validate(); err != nil {
		t.Errorf("default config should produce valid params: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetview.yaml")

	cfg := DefaultConfig()
	cfg.Topology = "minimal"
	cfg.Forces.Repulsion = 750

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Topology != "minimal" {
		t.Errorf("expected topology minimal, got %s", loaded.Topology)
	}
	if loaded.Forces.Repulsion != 750 {
		t.Errorf("expected repulsion 750, got %f", loaded.Forces.Repulsion)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("datacenter", "tight")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Forces.Attraction != 0.12 {
		t.Errorf("expected attraction 0.12, got %f", cfg.Forces.Attraction)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("datacenter", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "calm"); cfg != nil {
		t.Error("expected nil for nonexistent topology")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("datacenter"); len(presets) == 0 {
		t.Error("expected presets for datacenter")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent topology")
	}
}
