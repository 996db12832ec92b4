package config

// Tuning presets per topology. "calm" favors slow settling for demos,
// "tight" packs connected clusters, "spacious" spreads everything out
// for dense fleets.
var Presets = map[string]map[string]*Config{
	"datacenter": {
		"calm": {
			Topology: "datacenter", TickMs: 50,
			Bounds: BoundsConfig{Width: 600, Height: 400},
			Forces: ForceConfig{Repulsion: 300, Attraction: 0.03, Centering: 0.01},
		},
		"tight": {
			Topology: "datacenter", TickMs: 50,
			Bounds: BoundsConfig{Width: 600, Height: 400},
			Forces: ForceConfig{Repulsion: 200, Attraction: 0.12, Centering: 0.02},
		},
		"spacious": {
			Topology: "datacenter", TickMs: 50,
			Bounds: BoundsConfig{Width: 900, Height: 600},
			Forces: ForceConfig{Repulsion: 900, Attraction: 0.04, Centering: 0.008},
		},
	},
	"microservices": {
		"calm": {
			Topology: "microservices", TickMs: 50,
			Bounds: BoundsConfig{Width: 600, Height: 400},
			Forces: ForceConfig{Repulsion: 400, Attraction: 0.05, Centering: 0.01},
		},
		"tight": {
			Topology: "microservices", TickMs: 50,
			Bounds: BoundsConfig{Width: 600, Height: 400},
			Forces: ForceConfig{Repulsion: 250, Attraction: 0.1, Centering: 0.02},
		},
	},
	"minimal": {
		"calm": {
			Topology: "minimal", TickMs: 50,
			Bounds: BoundsConfig{Width: 600, Height: 400},
			Forces: ForceConfig{Repulsion: 500, Attraction: 0.05, Centering: 0.01},
		},
	},
}

func GetPreset(topology, preset string) *Config {
	topologyPresets, ok := Presets[topology]
	if !ok {
		return nil
	}
	cfg, ok := topologyPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(topology string) []string {
	topologyPresets, ok := Presets[topology]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(topologyPresets))
	for name := range topologyPresets {
		names = append(names, name)
	}
	return names
}
