package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/export"
	"github.com/san-kum/backdrop/internal/field"
	"github.com/san-kum/backdrop/internal/gui"
	"github.com/san-kum/backdrop/internal/viz"
	"github.com/san-kum/backdrop/internal/window"
	"github.com/spf13/cobra"
)

var (
	// Config file
	configFile string
	// Preset name
	preset string
	seed   int64
	count  int
	// Frame rate for loops that are not vsync-driven
	frameRate int
	debug     bool

	// bench
	benchFrames int
	benchCounts string
	chartFile   string
	// snapshot
	snapFrames int
	outFile    string
	braille    bool
	// init-config
	force bool
)

var errUnknownPreset = errors.New("unknown preset")

// main registers the commands and flags, runs the terminal view when no
// subcommand is given, and exits with status 1 if the command fails.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "backdrop",
		Short: "animated particle field backdrop",
		RunE:  runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	pf.IntVar(&count, "count", field.DefaultCount, "number of particles")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	pf.BoolVar(&debug, "debug", false, "write a debug log")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "render the field in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "render the field in a raylib window",
		RunE:  runGUI,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "render the field in an ebiten window",
		RunE:  runWindow,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure headless frame throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per run")
	benchCmd.Flags().StringVar(&benchCounts, "counts", "30,60,120,240,500", "comma-separated particle counts")
	benchCmd.Flags().StringVar(&chartFile, "chart", "", "write the link count series to an svg file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", config.DefaultSnapshot, "frames to advance before capturing")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "backdrop.svg", "output file")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "capture the terminal rendering instead")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("available presets:")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-14s %3d particles, links under %.0fpx\n", p, cfg.Field.Count, cfg.Field.LinkDistance)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	rootCmd.AddCommand(tuiCmd, guiCmd, windowCmd, benchCmd, snapshotCmd, presetsCmd, initCmd)
	return rootCmd
}

// loadConfig layers the config file, the preset and explicitly set flags over
// the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" && !cfg.Apply(preset) {
		return nil, fmt.Errorf("%w %q (have %s)", errUnknownPreset, preset, strings.Join(config.ListPresets(), ", "))
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Field.Count = count
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRand(cfg *config.Config) *rand.Rand {
	if cfg.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(cfg.Seed))
}

// prepare loads the config and routes the log before a command starts.
func prepare(cmd *cobra.Command) (*config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	f, err := setupLogging(cfg.Debug, cfg.Render.LogPath)
	if err != nil {
		return nil, nil, err
	}
	done := func() {
		if f != nil {
			f.Close()
		}
	}
	log.Printf("config: %d particles at %d fps, seed %d", cfg.Field.Count, cfg.Render.FPS, cfg.Seed)
	return cfg, done, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, done, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer done()

	m, err := viz.NewModel(cfg, newRand(cfg))
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, done, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer done()
	return gui.Run(cfg, newRand(cfg))
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, done, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer done()
	return window.Run(cfg, newRand(cfg))
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, done, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer done()

	counts, err := parseCounts(benchCounts)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d frames at %dx%d\n\n", benchFrames, cfg.Render.Width, cfg.Render.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tMEAN LINKS\tPEAK LINKS")

	var series []float64
	for _, n := range counts {
		run := *cfg
		run.Field.Count = n
		res, err := benchmark(&run, newRand(&run), benchFrames)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1f\t%d\n",
			n, res.Frames, res.Elapsed.Round(time.Microsecond), res.FramesPerSec(), res.MeanLinks, res.PeakLinks)
		if n == cfg.Field.Count || series == nil {
			series = res.Links
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("links per frame")))
	}
	if chartFile != "" {
		if err := os.WriteFile(chartFile, []byte(export.SeriesToSVG(series, 800, 200, "#60a5fa")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", chartFile)
	}
	return nil
}

func parseCounts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("count %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, errors.New("no particle counts given")
	}
	return out, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, done, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer done()

	var svg string
	if braille {
		svg, err = snapshotBraille(cfg, newRand(cfg), snapFrames)
	} else {
		svg, err = snapshot(cfg, newRand(cfg), snapFrames)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s after %d frames\n", outFile, snapFrames)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "backdrop.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
