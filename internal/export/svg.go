package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

var svgKindColors = map[string]string{
	"server":    "#00a8cc",
	"container": "#ffd700",
	"process":   "#00ff88",
}

const svgDefaultColor = "#e0f0ff"

// GraphToSVG renders a computed layout as a standalone SVG document.
// Coordinates pass through unscaled since layout space is already in
// pixels.
func GraphToSVG(g topo.Graph, positions layout.PositionMap, bounds layout.Bounds) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, bounds.Width, bounds.Height, bounds.Width, bounds.Height))

	sb.WriteString(`<g stroke="#335577" stroke-width="1">` + "\n")
	for _, e := range g.Edges {
		from, ok := positions[e.Source]
		if !ok {
			continue
		}
		to, ok := positions[e.Target]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, from.X, from.Y, to.X, to.Y))
	}
	sb.WriteString("</g>\n")

	for _, n := range g.Nodes {
		p, ok := positions[n.ID]
		if !ok {
			continue
		}
		color, ok := svgKindColors[n.Kind]
		if !ok {
			color = svgDefaultColor
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
<text x="%.1f" y="%.1f" fill="#e0f0ff" font-family="monospace" font-size="10">%s</text>
`, p.X, p.Y, n.Radius, color, p.X+n.Radius+3, p.Y+3, n.ID))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// sortedIDs gives exporters a stable node order.
func sortedIDs(positions layout.PositionMap) []string {
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
