package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pmorenz/oscilab/internal/analysis"
	"github.com/pmorenz/oscilab/internal/config"
	"github.com/pmorenz/oscilab/internal/metrics"
	"github.com/pmorenz/oscilab/internal/ode"
	"github.com/pmorenz/oscilab/internal/physics"
	"github.com/pmorenz/oscilab/internal/sim"
	"github.com/pmorenz/oscilab/internal/solvers"
	"github.com/pmorenz/oscilab/internal/storage"
	"github.com/pmorenz/oscilab/internal/viz"
)

var (
	dataDir     string
	solverName  string
	granularity string
	duration    float64
	frameDelta  float64
	initState   []float64
	paramFlags  []string
	configFile  string
	preset      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oscilab",
		Short: "oscillator physics lab with swappable ODE solvers",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oscilab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run with interactive terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [model] [solver1] [solver2] ...",
		Short: "compare solvers on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSolvers,
	}
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	solversCmd := &cobra.Command{
		Use:   "solvers",
		Short: "list available solvers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range solvers.Kinds() {
				fmt.Println(kind)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, listCmd, plotCmd,
		analyzeCmd, exportCmd, exportCSVCmd, presetsCmd, solversCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&solverName, "solver", "rk4", "solver kind")
	cmd.Flags().StringVar(&granularity, "granularity", "normal", "nominal step size (coarse|normal|fine)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&frameDelta, "frame", config.DefaultFrameDelta, "frame delta fed to the solver")
	cmd.Flags().Float64SliceVar(&initState, "state", nil, "initial state vector")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "model parameter (name=value, repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
}

// resolveConfig merges preset, config file and flags into one run config.
func resolveConfig(cmd *cobra.Command, modelName string) (*config.Config, error) {
	cfg := config.Default()
	cfg.Model = modelName

	if preset != "" {
		p := config.GetPreset(modelName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)",
				preset, config.ListPresets(modelName))
		}
		*cfg = *p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *fileCfg
		cfg.Model = modelName
	}

	if cmd.Flags().Changed("solver") || cfg.Solver == "" {
		cfg.Solver = solverName
	}
	if cmd.Flags().Changed("granularity") || cfg.Granularity == "" {
		cfg.Granularity = granularity
	}
	if cmd.Flags().Changed("time") || cfg.Duration == 0 {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("frame") || cfg.FrameDelta == 0 {
		cfg.FrameDelta = frameDelta
	}
	if cmd.Flags().Changed("state") {
		cfg.InitState = initState
	}

	for _, p := range paramFlags {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q, want name=value", p)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", p, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[name] = v
	}

	return cfg, nil
}

// buildModel constructs the model, applies parameter overrides and returns
// the initial state.
func buildModel(cfg *config.Config) (ode.Model, ode.State, error) {
	model, err := physics.NewModel(cfg.Model)
	if err != nil {
		return nil, nil, err
	}

	if len(cfg.Params) > 0 {
		configurable, ok := model.(ode.Configurable)
		if !ok {
			return nil, nil, fmt.Errorf("model %s has no adjustable params", cfg.Model)
		}
		for name, value := range cfg.Params {
			if err := configurable.SetParam(name, value); err != nil {
				return nil, nil, err
			}
		}
	}

	x0 := ode.State(cfg.InitState).Clone()
	if len(x0) == 0 {
		x0, err = physics.DefaultState(cfg.Model)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(x0) != model.Dim() {
		return nil, nil, fmt.Errorf("model %s wants %d state values, got %d",
			cfg.Model, model.Dim(), len(x0))
	}
	return model, x0, nil
}

func buildSolver(cfg *config.Config) (ode.Solver, error) {
	solver, err := solvers.New(solvers.Kind(cfg.Solver))
	if err != nil {
		return nil, err
	}
	h, err := config.Granularity(cfg.Granularity).StepSize()
	if err != nil {
		return nil, err
	}
	solver.SetFixedStep(h)
	return solver, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	model, x0, err := buildModel(cfg)
	if err != nil {
		return err
	}
	solver, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	runner := sim.NewRunner(model, solver)
	runner.AddMetric(metrics.NewEnergyDrift(model))
	runner.AddMetric(metrics.NewStability(100.0))

	fmt.Printf("running %s with %s...\n", cfg.Model, cfg.Solver)
	start := time.Now()

	result, err := runner.Run(context.Background(), x0, sim.RunConfig{
		FrameDelta:    cfg.FrameDelta,
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Model:       cfg.Model,
		Solver:      cfg.Solver,
		Granularity: cfg.Granularity,
		FrameDelta:  cfg.FrameDelta,
		Duration:    cfg.Duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	model, x0, err := buildModel(cfg)
	if err != nil {
		return err
	}
	model.SetState(x0)

	settings := config.NewSettings()
	settings.SetSolver(solvers.Kind(cfg.Solver))
	settings.SetGranularity(config.Granularity(cfg.Granularity))

	stepper, err := sim.NewStepper(model, settings.Solver())
	if err != nil {
		return err
	}
	stepper.SetFixedStep(settings.StepSize())

	p := tea.NewProgram(viz.NewLiveModel(stepper, settings, cfg.Model))
	_, err = p.Run()
	return err
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("comparing solvers for %s (frame=%.4f, duration=%.1fs)\n\n",
		cfg.Model, cfg.FrameDelta, cfg.Duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tFINAL_X0\tENERGY_DRIFT\tTIME_MS")

	for _, name := range args[1:] {
		cfg.Solver = name

		model, x0, err := buildModel(cfg)
		if err != nil {
			return err
		}
		solver, err := buildSolver(cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		runner := sim.NewRunner(model, solver)
		start := time.Now()
		result, err := runner.Run(context.Background(), x0, sim.RunConfig{
			FrameDelta:    cfg.FrameDelta,
			Duration:      cfg.Duration,
			ValidateState: true,
		})
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		finalX0 := 0.0
		if len(result.States) > 0 {
			finalX0 = result.States[len(result.States)-1][0]
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.2e\t%.2f\n",
			name, finalX0, result.EnergyDrift,
			float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tSOLVER\tSTEP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%s\t%s\n",
			run.ID, run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration, run.Solver, run.Granularity)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s (%s, %s)\n\n", meta.ID, meta.Model, meta.Solver)

	for varIdx := range states[0] {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d vs time", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 4 || len(states[0]) == 0 {
		return fmt.Errorf("not enough data")
	}

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(analysis.Pad(data))
	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, meta.Model)
	fmt.Println(graph)

	sampleDt := meta.FrameDelta
	if len(times) > 1 {
		sampleDt = times[1] - times[0]
	}
	if period := analysis.DominantPeriod(data, sampleDt); period > 0 {
		fmt.Printf("\ndominant period: %.4f s (%.4f hz)\n", period, 1/period)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, states, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
