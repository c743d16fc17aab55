// Package main provides the CLI entrypoint for glaretrace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumenlab/glaretrace/internal/config"
	"github.com/lumenlab/glaretrace/internal/heatmap"
	"github.com/lumenlab/glaretrace/internal/model"
	"github.com/lumenlab/glaretrace/internal/radiance"
	"github.com/lumenlab/glaretrace/internal/reportui"
	"github.com/lumenlab/glaretrace/internal/stats"
	"github.com/lumenlab/glaretrace/internal/store"
	"github.com/lumenlab/glaretrace/internal/trace"
)

const (
	defaultBounces    = 3
	defaultDivisions  = 500
	defaultConfigName = "glaretrace.toml"
)

var (
	runCores   int
	runImage   bool
	runDates   []string
	runBounces int
	runDivs    int
	runDirect  bool

	reportPlain bool
	reportRun   int64
	reportPoint int

	plotRun int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "glaretrace <config.toml>",
		Short:         "Annual glare simulation via the Radiance tool chain",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSimulateCmd,
	}

	rootCmd.Flags().IntVarP(&runCores, "cores", "c", runtime.NumCPU(), "rtrace processes")
	rootCmd.Flags().BoolVar(&runImage, "img", false, "keep HDR renderings and write falsecolor TIFFs")
	rootCmd.Flags().StringArrayVar(&runDates, "date", nil, "simulate one instant, mmddhh (repeatable); omit for the annual schedule")
	rootCmd.Flags().IntVar(&runBounces, "ab", defaultBounces, "ambient bounces")
	rootCmd.Flags().IntVar(&runDivs, "ad", defaultDivisions, "ambient divisions")
	rootCmd.Flags().BoolVar(&runDirect, "direct", false, "evaluate glare even without a visible solar disk")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runSimulateCmd(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	if runCores <= 0 {
		return fmt.Errorf("--cores must be > 0")
	}
	if runBounces < 0 {
		return fmt.Errorf("--ab must be >= 0")
	}
	if runDivs <= 0 {
		return fmt.Errorf("--ad must be > 0")
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open result archive: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close result archive: %v\n", cerr)
		}
	}()

	opts := model.RunOptions{
		Cores:       runCores,
		Image:       runImage,
		Dates:       runDates,
		Bounces:     runBounces,
		Divisions:   runDivs,
		ForceDirect: runDirect,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &radiance.ExecRunner{Echo: os.Stdout}
	tracer := trace.New(cfg, opts, runner, st, os.Stderr)
	return tracer.Run(ctx)
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <config.toml>",
		Short: "Browse archived run results",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportCmd,
	}
	cmd.Flags().BoolVar(&reportPlain, "plain", false, "print a plain-text table instead of the TUI")
	cmd.Flags().Int64Var(&reportRun, "run", 0, "run id (default: most recent)")
	cmd.Flags().IntVar(&reportPoint, "point", -1, "restrict to one view point")
	return cmd
}

func runReportCmd(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open result archive: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close result archive: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, model.ReportConfig{
		RunID: reportRun,
		Point: reportPoint,
	})
	if err != nil {
		return err
	}

	if reportPlain {
		return stats.PlainReport(os.Stdout, report)
	}
	program := tea.NewProgram(reportui.NewModel(report), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report TUI: %w", err)
	}
	return nil
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <config.toml>",
		Short: "Write day-by-hour DGP heat maps as PNG files",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlotCmd,
	}
	cmd.Flags().Int64Var(&plotRun, "run", 0, "run id (default: most recent)")
	return cmd
}

func runPlotCmd(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open result archive: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close result archive: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	run := model.RunInfo{ID: plotRun}
	if plotRun == 0 {
		if run, err = st.LatestRun(ctx); err != nil {
			return err
		}
	}
	points, err := st.Points(ctx, run.ID)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("run %d has no results", run.ID)
	}
	results, err := st.ListResults(ctx, run.ID, -1)
	if err != nil {
		return err
	}

	for _, point := range points {
		path := cfg.OutPath(fmt.Sprintf("dgp_%d.png", point))
		if err := heatmap.WritePNG(path, point, results); err != nil {
			return err
		}
		logErrf("Wrote %s\n", path)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Create/open a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, args []string) error {
	path := defaultConfigName
	if len(args) == 1 {
		path = args[0]
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

const configTemplate = `# glaretrace configuration

[site]
lat = 40.41    # latitude in degrees, north positive
lon = 3.70     # longitude in degrees, west positive (gensky convention)
mer = -15.0    # time-zone meridian in degrees west

[paths]
in_dir = "in"
work_dir = "work"
out_dir = "out"
materials = "materials.rad"
room = "room.rad"
glazing = "glazing.rad"
shading = "shading.rad"
obstacles = "obstacles.rad"
view_points = "view_points.txt"
`

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
