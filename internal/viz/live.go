package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 120
	dragStep        = 10.0
)

type FrameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// Model is the live topology view. It owns a Driver and reads position
// snapshots on its own frame cadence; the physics cadence stays the
// driver's business.
type Model struct {
	graph    topo.Graph
	driver   *layout.Driver
	params   layout.Params
	bounds   layout.Bounds
	theme    Theme
	canvas   *Canvas
	topology string

	selected    int
	dragging    bool
	dragPos     layout.Point
	lastSnap    layout.PositionMap
	dispHistory []float64
	showHelp    bool
	startErr    string
}

// NewModel builds the live view. The driver should already be started;
// the model takes over its lifecycle from there.
func NewModel(topology string, graph topo.Graph, driver *layout.Driver, params layout.Params, themeName string) Model {
	return Model{
		graph:       graph,
		driver:      driver,
		params:      params,
		bounds:      params.Bounds,
		theme:       GetTheme(themeName),
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		topology:    topology,
		dispHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return frameTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.driver.Stop()
			return m, tea.Quit
		case " ":
			m.togglePhysics()
		case "r":
			m.stopDrag()
			m.driver.Reseed(m.graph.Nodes, m.bounds)
		case "tab":
			m.stopDrag()
			m.selected = (m.selected + 1) % len(m.graph.Nodes)
		case "shift+tab":
			m.stopDrag()
			m.selected = (m.selected + len(m.graph.Nodes) - 1) % len(m.graph.Nodes)
		case "d", "enter":
			m.toggleDrag()
		case "up", "k":
			m.moveDrag(0, -dragStep)
		case "down", "j":
			m.moveDrag(0, dragStep)
		case "left", "h":
			m.moveDrag(-dragStep, 0)
		case "right", "l":
			m.moveDrag(dragStep, 0)
		case "+", "=":
			m.tuneRepulsion(1.1)
		case "-", "_":
			m.tuneRepulsion(0.9)
		case "a":
			m.tuneAttraction(1.1)
		case "A":
			m.tuneAttraction(0.9)
		case "t":
			m.cycleTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case FrameMsg:
		snap := m.driver.Snapshot()
		m.recordDisplacement(snap)
		m.lastSnap = snap
		return m, frameTick()
	}
	return m, nil
}

func (m *Model) togglePhysics() {
	if m.driver.Running() {
		m.driver.Stop()
		return
	}
	if err := m.driver.Start(m.graph.Nodes, m.graph.Edges, m.params); err != nil {
		m.startErr = err.Error()
		return
	}
	m.startErr = ""
}

func (m *Model) selectedNode() topo.Node {
	return m.graph.Nodes[m.selected]
}

func (m *Model) toggleDrag() {
	if m.dragging {
		m.stopDrag()
		return
	}
	m.dragging = true
	if p, ok := m.driver.Snapshot()[m.selectedNode().ID]; ok {
		m.dragPos = p
	}
	m.driver.SetDragTarget(m.selectedNode().ID, m.dragPos)
}

func (m *Model) stopDrag() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.driver.ClearDragTarget()
}

func (m *Model) moveDrag(dx, dy float64) {
	if !m.dragging {
		return
	}
	m.dragPos.X += dx
	m.dragPos.Y += dy
	m.driver.SetDragTarget(m.selectedNode().ID, m.dragPos)
}

func (m *Model) tuneRepulsion(factor float64) {
	m.params.Repulsion *= factor
	m.driver.SetParams(m.params)
}

func (m *Model) tuneAttraction(factor float64) {
	m.params.Attraction *= factor
	m.driver.SetParams(m.params)
}

func (m *Model) cycleTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == m.theme.Name {
			m.theme = GetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func (m *Model) recordDisplacement(snap layout.PositionMap) {
	if m.lastSnap != nil && len(snap) > 0 {
		total := 0.0
		for id, p := range snap {
			if prev, ok := m.lastSnap[id]; ok {
				total += prev.DistanceTo(p)
			}
		}
		m.dispHistory = append(m.dispHistory, total/float64(len(snap)))
		if len(m.dispHistory) > historyCapacity {
			m.dispHistory = m.dispHistory[1:]
		}
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawGraph(m.canvas, m.graph, m.lastSnap, m.bounds, m.selectedNode().ID)

	canvasStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Muted).
		Foreground(m.theme.Primary).
		Padding(0, 1)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		m.sidePanel())

	if m.showHelp {
		return m.helpView() + "\n" + mainView
	}
	return mainView
}

func (m Model) sidePanel() string {
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.topology)) + "\n")

	status := "PAUSED"
	statusStyle := lipgloss.NewStyle().Foreground(m.theme.Warning).Bold(true)
	if m.driver.Running() {
		status = "RUNNING"
		statusStyle = lipgloss.NewStyle().Foreground(m.theme.Success).Bold(true)
	}
	if m.dragging {
		status += " · DRAG"
	}
	s.WriteString(statusStyle.Render(status) + "\n")
	if m.startErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
		s.WriteString(errStyle.Render(m.startErr) + "\n")
	}
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.driver.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Repulsion") + valueStyle.Render(fmt.Sprintf("%.0f", m.params.Repulsion)) + "\n")
	s.WriteString(labelStyle.Render("Attraction") + valueStyle.Render(fmt.Sprintf("%.3f", m.params.Attraction)) + "\n")
	s.WriteString(labelStyle.Render("Centering") + valueStyle.Render(fmt.Sprintf("%.3f", m.params.Centering)) + "\n\n")

	if len(m.dispHistory) > 1 {
		chart := asciigraph.Plot(m.dispHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("mean displacement"),
		)
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(chart) + "\n\n")
	}

	s.WriteString(headerStyle.Render("NODES") + "\n")
	for i, n := range m.graph.Nodes {
		kindStyle := lipgloss.NewStyle().Foreground(m.theme.KindColor(n.Kind))
		line := fmt.Sprintf("%-14s %s", n.ID, kindStyle.Render(n.Kind))
		if i == m.selected {
			s.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	hints := lipgloss.NewStyle().Foreground(m.theme.Muted).MarginTop(1)
	s.WriteString(hints.Render("SP:Physics R:Reseed Tab:Select\nD:Drag ←↑↓→:Move +/-:Repulsion\nA:Attraction T:Theme ?:Help Q:Quit"))

	return lipgloss.NewStyle().Padding(0, 2).Render(s.String())
}

func (m Model) helpView() string {
	return lipgloss.NewStyle().Foreground(m.theme.Text).Render(`
  Space    pause / resume the physics simulation
  R        reseed the layout onto the initial circle
  Tab      cycle node selection
  D/Enter  pick up / put down the selected node
  Arrows   move the picked-up node
  + / -    tune repulsion strength
  a / A    tune attraction strength
  T        cycle themes
  ?        toggle this help
  Q        quit`)
}
