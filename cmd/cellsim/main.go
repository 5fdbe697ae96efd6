package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/metrics"
	"github.com/san-kum/cellsim/internal/render"
	"github.com/san-kum/cellsim/internal/sim"
	"github.com/san-kum/cellsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	width      int
	height     int
	predator   bool
	seed       int64
	delay      time.Duration
	maxGen     int
	clearFrame bool
	configFile string
	preset     string
	plot       bool
	verbose    bool
	benchGens  int
	themeName  string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "cellsim",
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
})

// main registers the commands and runs the reference simulation when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "cellsim",
		Short:         "cellular automaton with a roaming predator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runText,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	}
	addSimFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation in text mode",
		Args:  cobra.NoArgs,
		RunE:  runText,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&clearFrame, "clear", false, "repaint the terminal for every frame")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the population after the run")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the simulation in an interactive view",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	addSimFlags(watchCmd)
	watchCmd.Flags().StringVar(&themeName, "theme", viz.ThemeCyberpunk.Name,
		"colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tPREDATOR\tDELAY")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%dx%d\t%v\t%v\n", name, p.Width, p.Height, p.Predator, p.Delay)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generations per second",
		Args:  cobra.NoArgs,
		RunE:  benchGrid,
	}
	benchCmd.Flags().IntVar(&benchGens, "generations", 500, "generations per size")
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	rootCmd.AddCommand(runCmd, watchCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("cellsim failed", "err", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", sim.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", sim.DefaultHeight, "grid height")
	cmd.Flags().BoolVar(&predator, "predator", sim.DefaultPredator, "seed a predator cell")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().DurationVar(&delay, "delay", sim.DefaultDelay, "delay between generations")
	cmd.Flags().IntVar(&maxGen, "max-gen", 0, "stop after this many generations (0 = until extinction)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("predator") {
		cfg.Predator = predator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Changed("max-gen") {
		cfg.MaxGenerations = maxGen
	}
	if f := flags.Lookup("clear"); f != nil && f.Changed {
		cfg.ClearScreen = clearFrame
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Width:          cfg.Width,
		Height:         cfg.Height,
		Predator:       cfg.Predator,
		Seed:           cfg.Seed,
		Delay:          cfg.Delay,
		MaxGenerations: cfg.MaxGenerations,
	}
}

func runText(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := render.NewText(os.Stdout, cfg.ClearScreen)
	s := sim.New(simConfig(cfg), out, sim.RealClock{})
	s.SetLogger(logger)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	if err := out.Start(); err != nil {
		return err
	}
	result, err := s.Run(ctx)
	if stopErr := out.Stop(); err == nil {
		err = stopErr
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted", "generations", result.Generations)
		return nil
	}
	if err != nil {
		return err
	}

	if result.Terminated {
		if err := out.Message(sim.TerminalMessage); err != nil {
			return err
		}
	}

	logger.Info("run complete",
		"seed", result.Seed,
		"generations", result.Generations,
		"kills", result.Kills,
		"peak", result.Metrics["peak_population"],
		"mean", fmt.Sprintf("%.2f", result.Metrics["mean_population"]),
		"kill_rate", fmt.Sprintf("%.2f", result.Metrics["kill_rate"]))

	if plot && len(result.Population) > 1 {
		data := make([]float64, len(result.Population))
		for i, v := range result.Population {
			data[i] = float64(v)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("alive cells per generation"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s := sim.New(simConfig(cfg), nil, nil)
	if err := s.Init(); err != nil {
		return err
	}
	logger.Debug("watch started", "seed", s.Seed(), "theme", themeName)

	p := tea.NewProgram(viz.NewModel(s, cfg.Delay, themeName), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchGrid(cmd *cobra.Command, args []string) error {
	sizes := []int{20, 50, 100, 200}

	fmt.Printf("benchmarking %d generations per size\n\n", benchGens)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tGENERATIONS\tTIME\tGEN/SEC\tEXTINCT")

	for _, size := range sizes {
		cfg := sim.Config{
			Width:          size,
			Height:         size,
			Predator:       true,
			Seed:           seed,
			MaxGenerations: benchGens,
		}
		s := sim.New(cfg, render.Discard{}, sim.RealClock{})

		start := time.Now()
		result, err := s.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		genPerSec := float64(result.Generations) / elapsed.Seconds()
		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\t%v\n",
			size, size, result.Generations, elapsed, genPerSec, result.Terminated)
	}

	return w.Flush()
}
