package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/topolab/fleetview/internal/layout"
)

const (
	DefaultWidth      = 600.0
	DefaultHeight     = 400.0
	DefaultRepulsion  = 500.0
	DefaultAttraction = 0.05
	DefaultCentering  = 0.01
	DefaultTickMs     = 50
	DefaultMaxTicks   = 1000
	DefaultEpsilon    = 0.05
)

type Config struct {
	Topology string       `yaml:"topology"`
	Bounds   BoundsConfig `yaml:"bounds"`
	Forces   ForceConfig  `yaml:"forces"`
	TickMs   int          `yaml:"tick_ms"`
	MaxTicks int          `yaml:"max_ticks"`
	Epsilon  float64      `yaml:"epsilon"`
	Theme    string       `yaml:"theme"`
}

type BoundsConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ForceConfig struct {
	Repulsion  float64 `yaml:"repulsion"`
	Attraction float64 `yaml:"attraction"`
	Centering  float64 `yaml:"centering"`
}

func DefaultConfig() *Config {
	return &Config{
		Topology: "datacenter",
		Bounds:   BoundsConfig{Width: DefaultWidth, Height: DefaultHeight},
		Forces: ForceConfig{
			Repulsion:  DefaultRepulsion,
			Attraction: DefaultAttraction,
			Centering:  DefaultCentering,
		},
		TickMs:   DefaultTickMs,
		MaxTicks: DefaultMaxTicks,
		Epsilon:  DefaultEpsilon,
		Theme:    "ocean",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LayoutParams translates the config into engine parameters.
func (c *Config) LayoutParams() layout.Params {
	return layout.Params{
		Repulsion:  c.Forces.Repulsion,
		Attraction: c.Forces.Attraction,
		Centering:  c.Forces.Centering,
		Bounds:     layout.Bounds{Width: c.Bounds.Width, Height: c.Bounds.Height},
	}
}
