package topo

import (
	"fmt"
	"sort"
)

// Built-in fleet topologies used by the CLI commands. Real deployments
// feed their own graphs through the same types.
var samples = map[string]Graph{
	"minimal": {
		Nodes: []Node{
			{ID: "server-a", Kind: "server"},
			{ID: "server-b", Kind: "server"},
		},
		Edges: []Edge{
			{Source: "server-a", Target: "server-b"},
		},
	},
	"datacenter": {
		Nodes: []Node{
			{ID: "edge-lb", Kind: "server", Radius: 12},
			{ID: "web-1", Kind: "container"},
			{ID: "web-2", Kind: "container"},
			{ID: "web-3", Kind: "container"},
			{ID: "api-1", Kind: "container"},
			{ID: "api-2", Kind: "container"},
			{ID: "queue", Kind: "process"},
			{ID: "worker-1", Kind: "process"},
			{ID: "worker-2", Kind: "process"},
			{ID: "db-primary", Kind: "server", Radius: 12},
			{ID: "db-replica", Kind: "server"},
			{ID: "cache", Kind: "process"},
		},
		Edges: []Edge{
			{Source: "edge-lb", Target: "web-1", Weight: 2},
			{Source: "edge-lb", Target: "web-2", Weight: 2},
			{Source: "edge-lb", Target: "web-3", Weight: 2},
			{Source: "web-1", Target: "api-1"},
			{Source: "web-2", Target: "api-1"},
			{Source: "web-2", Target: "api-2"},
			{Source: "web-3", Target: "api-2"},
			{Source: "api-1", Target: "queue"},
			{Source: "api-2", Target: "queue"},
			{Source: "queue", Target: "worker-1"},
			{Source: "queue", Target: "worker-2"},
			{Source: "api-1", Target: "db-primary", Weight: 3},
			{Source: "api-2", Target: "db-primary", Weight: 3},
			{Source: "db-primary", Target: "db-replica", Weight: 2},
			{Source: "api-1", Target: "cache"},
			{Source: "api-2", Target: "cache"},
			{Source: "worker-1", Target: "db-primary"},
			{Source: "worker-2", Target: "db-primary"},
		},
	},
	"microservices": {
		Nodes: []Node{
			{ID: "gateway", Kind: "server", Radius: 12},
			{ID: "auth", Kind: "container"},
			{ID: "users", Kind: "container"},
			{ID: "billing", Kind: "container"},
			{ID: "notify", Kind: "container"},
			{ID: "ledger-db", Kind: "server"},
			{ID: "users-db", Kind: "server"},
			{ID: "mailer", Kind: "process"},
		},
		Edges: []Edge{
			{Source: "gateway", Target: "auth", Weight: 2},
			{Source: "gateway", Target: "users", Weight: 2},
			{Source: "gateway", Target: "billing"},
			{Source: "auth", Target: "users"},
			{Source: "users", Target: "users-db", Weight: 2},
			{Source: "billing", Target: "ledger-db", Weight: 2},
			{Source: "billing", Target: "notify"},
			{Source: "notify", Target: "mailer"},
			{Source: "billing", Target: "erp", Kind: "error"}, // dangling on purpose: erp is external
		},
	},
}

// Sample returns a named built-in topology, normalized.
func Sample(name string) (Graph, error) {
	g, ok := samples[name]
	if !ok {
		return Graph{}, fmt.Errorf("unknown topology: %s (available: %v)", name, SampleNames())
	}
	return g.Normalize(), nil
}

// SampleNames lists the built-in topology names, sorted.
func SampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
