package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/topolab/fleetview/internal/config"
	"github.com/topolab/fleetview/internal/export"
	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/metrics"
	"github.com/topolab/fleetview/internal/server"
	"github.com/topolab/fleetview/internal/storage"
	"github.com/topolab/fleetview/internal/sweep"
	"github.com/topolab/fleetview/internal/topo"
	"github.com/topolab/fleetview/internal/viz"
)

var (
	dataDir    string
	width      float64
	height     float64
	repulsion  float64
	attraction float64
	centering  float64
	maxTicks   int
	epsilon    float64
	tickMs     int
	theme      string
	// Config file
	configFile string
	// Preset name
	preset string
	// Serve flags
	addr     string
	logLevel string
	// Tune objective
	objective string
	// Export output path
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fleetview",
		Short: "force-directed fleet topology layout",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fleetview", "data directory")

	layoutCmd := &cobra.Command{
		Use:   "layout [topology]",
		Short: "compute a layout headlessly and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayout,
	}
	addForceFlags(layoutCmd)
	layoutCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "tick budget")
	layoutCmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "convergence threshold")
	layoutCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	layoutCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [topology]",
		Short: "interactive layout with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addForceFlags(liveCmd)
	liveCmd.Flags().IntVar(&tickMs, "tick-ms", config.DefaultTickMs, "physics tick interval")
	liveCmd.Flags().StringVar(&theme, "theme", "ocean", "color theme")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export node positions to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the layout snapshot to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportHTMLCmd := &cobra.Command{
		Use:   "export-html [run_id]",
		Short: "export an interactive HTML graph",
		Args:  cobra.ExactArgs(1),
		RunE:  exportHTML,
	}
	exportHTMLCmd.Flags().StringVar(&outFile, "out", "layout.html", "output file")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the layout to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	serveCmd := &cobra.Command{
		Use:   "serve [topology]",
		Short: "stream live layout frames over websockets",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	addForceFlags(serveCmd)
	serveCmd.Flags().IntVar(&tickMs, "tick-ms", config.DefaultTickMs, "physics tick interval")
	serveCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")

	presetsCmd := &cobra.Command{
		Use:   "presets [topology]",
		Short: "list available presets for a topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for topology: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [topology]",
		Short: "grid-search force parameters for fastest convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	addForceFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "tick budget per grid point")
	tuneCmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "convergence threshold")
	tuneCmd.Flags().StringVar(&objective, "objective", "ticks", "objective: ticks or spread")

	topologiesCmd := &cobra.Command{
		Use:   "topologies",
		Short: "list built-in sample topologies",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range topo.SampleNames() {
				g, err := topo.Sample(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-16s %d nodes, %d edges\n", name, len(g.Nodes), len(g.Edges))
			}
			return nil
		},
	}

	rootCmd.AddCommand(layoutCmd, liveCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportHTMLCmd, exportSVGCmd,
		serveCmd, presetsCmd, topologiesCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addForceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "layout width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "layout height")
	cmd.Flags().Float64Var(&repulsion, "repulsion", config.DefaultRepulsion, "repulsion strength")
	cmd.Flags().Float64Var(&attraction, "attraction", config.DefaultAttraction, "attraction strength")
	cmd.Flags().Float64Var(&centering, "centering", config.DefaultCentering, "centering strength")
}

// resolveParams layers preset, config file, and explicit flags, with
// flags winning over the config file and the config file winning over
// the preset.
func resolveParams(cmd *cobra.Command, topology string) (layout.Params, error) {
	if preset != "" {
		cfg := config.GetPreset(topology, preset)
		if cfg == nil {
			return layout.Params{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(topology))
		}
		repulsion = cfg.Forces.Repulsion
		attraction = cfg.Forces.Attraction
		centering = cfg.Forces.Centering
		width = cfg.Bounds.Width
		height = cfg.Bounds.Height
		if cfg.TickMs > 0 {
			tickMs = cfg.TickMs
		}
		if cfg.MaxTicks > 0 {
			maxTicks = cfg.MaxTicks
		}
		if cfg.Epsilon > 0 {
			epsilon = cfg.Epsilon
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return layout.Params{}, fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("width") {
			width = cfg.Bounds.Width
		}
		if !cmd.Flags().Changed("height") {
			height = cfg.Bounds.Height
		}
		if !cmd.Flags().Changed("repulsion") {
			repulsion = cfg.Forces.Repulsion
		}
		if !cmd.Flags().Changed("attraction") {
			attraction = cfg.Forces.Attraction
		}
		if !cmd.Flags().Changed("centering") {
			centering = cfg.Forces.Centering
		}
		if cmd.Flags().Lookup("max-ticks") != nil && !cmd.Flags().Changed("max-ticks") {
			maxTicks = cfg.MaxTicks
		}
		if cmd.Flags().Lookup("epsilon") != nil && !cmd.Flags().Changed("epsilon") {
			epsilon = cfg.Epsilon
		}
	}

	params := layout.Params{
		Repulsion:  repulsion,
		Attraction: attraction,
		Centering:  centering,
		Bounds:     layout.Bounds{Width: width, Height: height},
	}
	return params, params.Validate()
}

func runLayout(cmd *cobra.Command, args []string) error {
	topology := args[0]

	g, err := topo.Sample(topology)
	if err != nil {
		return err
	}

	params, err := resolveParams(cmd, topology)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("laying out %s (%d nodes, %d edges)...\n", topology, len(g.Nodes), len(g.Edges))
	start := time.Now()

	result, err := layout.Run(context.Background(), g.Nodes, g.Edges, params, layout.RunConfig{
		MaxTicks: maxTicks,
		Epsilon:  epsilon,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	spread := metrics.NewSpread()
	spread.OnTick(result.Positions, result.Ticks)
	compliance := metrics.NewBoundsCompliance(params.Bounds)
	compliance.OnTick(result.Positions, result.Ticks)

	extra := map[string]float64{
		spread.Name():     spread.Value(),
		compliance.Name(): compliance.Value(),
	}

	runID, err := st.Save(topology, params, result, extra)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("converged: %v\n", result.Converged)
	fmt.Println("\nmetrics:")

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, extra[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	topology := args[0]

	g, err := topo.Sample(topology)
	if err != nil {
		return err
	}

	params, err := resolveParams(cmd, topology)
	if err != nil {
		return err
	}

	driver := layout.NewDriver(layout.NewStore(params.Bounds), time.Duration(tickMs)*time.Millisecond)
	if err := driver.Start(g.Nodes, g.Edges, params); err != nil {
		return err
	}

	m := viz.NewModel(topology, g, driver, params, theme)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		driver.Stop()
		return err
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	topology := args[0]

	g, err := topo.Sample(topology)
	if err != nil {
		return err
	}

	params, err := resolveParams(cmd, topology)
	if err != nil {
		return err
	}

	var obj sweep.Objective
	switch objective {
	case "ticks":
		obj = sweep.TicksToConverge
	case "spread":
		obj = sweep.NegativeSpread
	default:
		return fmt.Errorf("unknown objective: %s", objective)
	}

	gs := sweep.NewGridSearch(
		[]string{"repulsion", "attraction", "centering"},
		[][]float64{
			{100, 300, 500, 900},
			{0.02, 0.05, 0.1},
			{0.005, 0.01, 0.02},
		},
	)

	fmt.Printf("sweeping %s (36 grid points)...\n", topology)
	start := time.Now()

	best, err := gs.Search(cmd.Context(), g, params, layout.RunConfig{
		MaxTicks: maxTicks,
		Epsilon:  epsilon,
	}, obj)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("best score: %.4f (%d ticks)\n", best.Score, best.Ticks)
	fmt.Printf("  repulsion:  %.0f\n", best.Params.Repulsion)
	fmt.Printf("  attraction: %.3f\n", best.Params.Attraction)
	fmt.Printf("  centering:  %.3f\n", best.Params.Centering)

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	topology := args[0]

	g, err := topo.Sample(topology)
	if err != nil {
		return err
	}

	params, err := resolveParams(cmd, topology)
	if err != nil {
		return err
	}

	level, err := server.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", logLevel, err)
	}
	log := server.NewLogger(os.Stderr, level)

	interval := time.Duration(tickMs) * time.Millisecond
	driver := layout.NewDriver(layout.NewStore(params.Bounds), interval)
	if err := driver.Start(g.Nodes, g.Edges, params); err != nil {
		return err
	}
	defer driver.Stop()

	srv := server.New(addr, g, driver, params.Bounds, interval, log)
	return srv.Run(cmd.Context())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOPOLOGY\tTIME\tTICKS\tCONVERGED\tREPULSION\tATTRACTION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%.0f\t%.3f\n",
			run.ID,
			run.Topology,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Converged,
			run.Repulsion,
			run.Attraction,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadConvergence(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("topology: %s\n", meta.Topology)
	fmt.Printf("ticks: %d, converged: %v\n\n", meta.Ticks, meta.Converged)

	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("mean displacement per tick"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	positions, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
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

// loadRunGraph rehydrates a stored run into its topology, final
// positions, and bounds.
func loadRunGraph(runID string) (topo.Graph, layout.PositionMap, layout.Bounds, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return topo.Graph{}, nil, layout.Bounds{}, err
	}

	g, err := topo.Sample(meta.Topology)
	if err != nil {
		return topo.Graph{}, nil, layout.Bounds{}, err
	}

	positions, err := st.LoadPositions(runID)
	if err != nil {
		return topo.Graph{}, nil, layout.Bounds{}, err
	}

	return g, positions, layout.Bounds{Width: meta.Width, Height: meta.Height}, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	g, positions, bounds, err := loadRunGraph(args[0])
	if err != nil {
		return err
	}

	data, err := export.GraphToJSON(g, positions, bounds)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func exportHTML(cmd *cobra.Command, args []string) error {
	g, positions, _, err := loadRunGraph(args[0])
	if err != nil {
		return err
	}

	if err := export.GraphToHTML(g, positions, outFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	g, positions, bounds, err := loadRunGraph(args[0])
	if err != nil {
		return err
	}

	fmt.Print(export.GraphToSVG(g, positions, bounds))
	return nil
}
