package export

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

// GraphToHTML writes an interactive ECharts page for a computed layout.
// The chart uses layout "none" so the positions shown are exactly the
// ones the simulation produced, not ECharts' own force model.
func GraphToHTML(g topo.Graph, positions layout.PositionMap, filename string) error {
	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		p, ok := positions[n.ID]
		if !ok {
			continue
		}
		nodes = append(nodes, opts.GraphNode{
			Name:       n.ID,
			X:          float32(p.X),
			Y:          float32(p.Y),
			SymbolSize: float32(n.Radius * 2),
			Category:   kindCategory(n.Kind),
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.ValidEdges() {
		links = append(links, opts.GraphLink{
			Source: e.Source,
			Target: e.Target,
			Value:  float32(e.Weight),
		})
	}

	page := components.NewPage()
	page.AddCharts(graphChart(nodes, links))

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return page.Render(f)
}

func kindCategory(kind string) int {
	switch kind {
	case "server":
		return 0
	case "container":
		return 1
	case "process":
		return 2
	default:
		return 3
	}
}

func graphChart(nodes []opts.GraphNode, links []opts.GraphLink) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "fleetview layout",
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"topology",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:    "none",
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)
	return graph
}
