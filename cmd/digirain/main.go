package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/digirain/internal/audio"
	"github.com/san-kum/digirain/internal/config"
	"github.com/san-kum/digirain/internal/export"
	"github.com/san-kum/digirain/internal/gui"
	"github.com/san-kum/digirain/internal/logging"
	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/tui"
	"github.com/san-kum/digirain/internal/viz"
)

var (
	configFile string
	preset     string
	seed       uint64
	logLevel   string
	logFile    string

	fps     int
	theme   string
	status  bool
	thunder bool

	width     int
	height    int
	frames    int
	outDir    string
	noPNG     bool
	gifOut    bool
	gifScale  float64
	svgOut    bool
	svgFrames int
	fontPath  string

	writeConfig string
)

// main registers the commands and runs the inline terminal view when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "digirain",
		Short:         "digital rain with lightning",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (none, trace, debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	hostFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
		cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
		cmd.Flags().BoolVar(&status, "status", false, "show the status line")
		cmd.Flags().BoolVar(&thunder, "thunder", false, "play a crackle when lightning strikes")
	}
	sizeFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&width, "width", config.DefaultExportWidth, "width in pixels")
		cmd.Flags().IntVar(&height, "height", config.DefaultExportHeight, "height in pixels")
	}
	hostFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run inline in the terminal (bubbletea)",
		RunE:  runTUI,
	}
	hostFlags(tuiCmd)

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "run full screen in the terminal (tcell)",
		RunE:  runTerm,
	}
	hostFlags(termCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window (raylib)",
		RunE:  runGUI,
	}
	hostFlags(guiCmd)
	sizeFlags(guiCmd)
	guiCmd.Flags().StringVar(&fontPath, "font", "", "font file with katakana glyphs")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames to PNG, GIF and SVG files",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate of the timeline")
	renderCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	sizeFlags(renderCmd)
	renderCmd.Flags().IntVar(&frames, "frames", config.DefaultExportFrames, "number of frames")
	renderCmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	renderCmd.Flags().BoolVar(&noPNG, "no-png", false, "skip the PNG sequence")
	renderCmd.Flags().BoolVar(&gifOut, "gif", false, "write an animated GIF")
	renderCmd.Flags().Float64Var(&gifScale, "gif-scale", 1, "GIF scale factor")
	renderCmd.Flags().BoolVar(&svgOut, "svg", false, "write an SVG of the last frames")
	renderCmd.Flags().IntVar(&svgFrames, "svg-frames", config.DefaultExportSVGLast, "frames kept in the SVG")
	renderCmd.Flags().StringVar(&fontPath, "font", "", "fallback font file for katakana")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the effect headless and report frame statistics",
		RunE:  runBench,
	}
	sizeFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", 1000, "number of frames")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tSPAWN\tFADE")
			for _, name := range config.ListPresets() {
				r := config.GetPreset(name).Render
				fmt.Fprintf(w, "%s\t%.1f-%.1f\t%.3f\t%.2f\n", name, r.SpeedMin, r.SpeedMax, r.SpawnProbability, r.FadeAlpha)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  runConfig,
	}
	hostFlags(configCmd)
	configCmd.Flags().StringVar(&writeConfig, "write", "", "save the configuration to this file")

	rootCmd.AddCommand(tuiCmd, termCmd, guiCmd, renderCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig starts from the defaults or a preset, overlays the config
// file, then applies every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	changed := cmd.Flags().Changed
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("fps") {
		cfg.FPS = fps
	}
	if changed("theme") {
		cfg.Theme = theme
	}
	if changed("status") {
		cfg.Status = status
	}
	if changed("thunder") {
		cfg.Thunder = thunder
	}
	if changed("width") {
		cfg.Export.Width = width
	}
	if changed("height") {
		cfg.Export.Height = height
	}
	if changed("frames") {
		cfg.Export.Frames = frames
	}
	if changed("svg-frames") {
		cfg.Export.SVGFrames = svgFrames
	}
	if changed("font") {
		cfg.Export.Font = fontPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := viz.LookupTheme(cfg.Theme); !ok {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	return cfg, nil
}

func effectiveSeed(cfg *config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

// newField sizes the field to width x height; hosts resize it to the real
// surface before the first frame.
func newField(cfg *config.Config, w, h float64, log zerolog.Logger) *rain.Field {
	s := effectiveSeed(cfg)
	log.Debug().Uint64("seed", s).Str("theme", cfg.Theme).Msg("field created")
	return rain.NewField(w, h, cfg.Params(), rain.NewRand(s)).WithGlyphs(cfg.GlyphSet())
}

// setup resolves the config, opens the log and builds the driver options
// shared by every host. Audio is only started for live hosts. The returned
// cleanup stops audio and closes the log.
func setup(cmd *cobra.Command, ownsScreen, live bool) (*config.Config, zerolog.Logger, []rain.Option, func(), error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, zerolog.Nop(), nil, func() {}, err
	}
	log, closeLog, err := logging.Setup(logging.Options{Level: logLevel, File: logFile, OwnsScreen: ownsScreen})
	if err != nil {
		return nil, zerolog.Nop(), nil, func() {}, err
	}

	opts := []rain.Option{rain.WithLogger(log)}
	cleanup := closeLog
	if live && cfg.Thunder {
		th := audio.NewThunder(0.5, log)
		if err := th.Start(); err == nil {
			opts = append(opts, rain.WithSpawnHook(th.Hook))
			cleanup = func() {
				th.Stop()
				closeLog()
			}
		}
	}
	return cfg, log, opts, cleanup, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, log, opts, cleanup, err := setup(cmd, true, true)
	if err != nil {
		return err
	}
	defer cleanup()

	m := viz.NewModel(newField(cfg, 0, 0, log), viz.Options{
		FPS:           cfg.FPS,
		Theme:         viz.GetTheme(cfg.Theme),
		Status:        cfg.Status,
		DriverOptions: opts,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, log, opts, cleanup, err := setup(cmd, true, true)
	if err != nil {
		return err
	}
	defer cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := tui.New(screen, newField(cfg, 0, 0, log), tui.Options{
		FPS:           cfg.FPS,
		Theme:         viz.GetTheme(cfg.Theme),
		Status:        cfg.Status,
		Logger:        log,
		DriverOptions: opts,
	})
	return s.Run(ctx)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, log, opts, cleanup, err := setup(cmd, false, true)
	if err != nil {
		return err
	}
	defer cleanup()

	w, h := cfg.Export.Width, cfg.Export.Height
	return gui.Run(newField(cfg, float64(w), float64(h), log), gui.Options{
		Width:         w,
		Height:        h,
		FPS:           cfg.FPS,
		FontPath:      cfg.Export.Font,
		Theme:         viz.GetTheme(cfg.Theme),
		Status:        cfg.Status,
		Logger:        log,
		DriverOptions: opts,
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, log, opts, cleanup, err := setup(cmd, false, false)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	th := viz.GetTheme(cfg.Theme)
	e := cfg.Export
	res, err := export.Run(ctx, newField(cfg, float64(e.Width), float64(e.Height), log), export.Options{
		Width:         e.Width,
		Height:        e.Height,
		Frames:        e.Frames,
		FPS:           cfg.FPS,
		OutDir:        outDir,
		PNG:           !noPNG,
		GIF:           gifOut,
		GIFScale:      gifScale,
		SVG:           svgOut,
		SVGFrames:     e.SVGFrames,
		FontPath:      e.Font,
		Tint:          th.Tint,
		Logger:        log,
		DriverOptions: opts,
	})
	if err != nil {
		return err
	}

	fmt.Printf("rendered %d frames in %v to %s\n", res.Frames, res.Elapsed.Round(time.Millisecond), outDir)
	for _, f := range []string{res.GIF, res.SVG} {
		if f != "" {
			fmt.Printf("  %s\n", filepath.Base(f))
		}
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, log, opts, cleanup, err := setup(cmd, false, false)
	if err != nil {
		return err
	}
	defer cleanup()

	e := cfg.Export
	collector := metrics.NewCollector(rain.NopSurface{})
	loop := &rain.Loop{}
	driver := rain.NewDriver(newField(cfg, float64(e.Width), float64(e.Height), log), collector, loop, opts...)

	step := 1000 / float64(cfg.FPS)
	start := time.Now()
	driver.Start()
	collector.Commit(driver.Stats())
	for i := 1; i < e.Frames; i++ {
		loop.Step(float64(i) * step)
		collector.Commit(driver.Stats())
	}
	elapsed := time.Since(start)
	st := driver.Stats()

	fmt.Printf("benchmarking %dx%d, %d frames\n\n", e.Width, e.Height, e.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tTIME\tFRAMES/SEC\tSPAWNED\tEXPIRED\tLIVE")
	fmt.Fprintf(w, "%d\t%v\t%.0f\t%d\t%d\t%d\n",
		st.Frames, elapsed.Round(time.Microsecond), float64(st.Frames)/elapsed.Seconds(),
		st.Spawned, st.Expired, st.Live)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range collector.Metrics() {
		fmt.Fprintf(w, "%s\t%.2f\n", m.Name(), m.Value())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if series := collector.GlyphSeries(); len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("glyphs per frame"),
		))
	}
	if series := collector.LiveSeries(); len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("live bolts"),
		))
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if writeConfig != "" {
		if err := config.Save(writeConfig, cfg); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", writeConfig)
		return nil
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
