package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ja7ad/bouncy/pkg/api"
	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/ja7ad/bouncy/pkg/chart"
	"github.com/ja7ad/bouncy/pkg/config"
	"github.com/ja7ad/bouncy/pkg/prompt"
	"github.com/ja7ad/bouncy/pkg/report"
	"github.com/ja7ad/bouncy/pkg/sound"
)

const (
	plotAsk = "ask"
	plotYes = "yes"
	plotNo  = "no"
)

// showChart blocks until the chart is closed.
var showChart = chart.Show

type opts struct {
	// drop
	height    float64
	heightMin float64
	eta       float64

	// model
	gravity float64
	samples int

	// presentation
	plot  string
	table bool

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
	wavPath  string

	logLevel string
}

func main() {
	cfg := config.Load()
	root := newRootCmd(cfg, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "bouncy",
		Short: "Bouncing ball simulator",
		Long: `The bouncy tool drops a ball from height h and lets it keep a fraction eta
of its height on every bounce. It reports how many bounces clear the height
of interest h_min, how long they take, and can plot the trajectory.

Values not given as flags are asked for interactively.

Examples:
  bouncy
  bouncy --height 10 --height-min 0.1 --eta 0.8 --plot no
  bouncy --height 10 --height-min 0.1 --eta 0.8 --plot no --csv out.csv --wav out.wav
  bouncy serve --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = config.ParseLevel(o.logLevel)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, o, in, out)
		},
	}

	root.PersistentFlags().StringVar(&o.logLevel, "log-level", cfg.LogLevel.String(), "log level: debug, info, warn, error")
	root.PersistentFlags().Float64VarP(&o.gravity, "gravity", "g", cfg.Gravity, "gravitational acceleration in m/s²")
	root.PersistentFlags().IntVar(&o.samples, "samples", cfg.Samples, "trajectory samples per fall or rise (>= 2)")

	root.Flags().Float64Var(&o.height, "height", 0, "drop height h in metres (asked if not set)")
	root.Flags().Float64Var(&o.heightMin, "height-min", 0, "height of interest in metres, 0 < height-min < h (asked if not set)")
	root.Flags().Float64Var(&o.eta, "eta", 0, "bounce efficiency, 0 < eta < 1 (asked if not set)")
	root.Flags().StringVar(&o.plot, "plot", plotAsk, "plot the trajectory: ask, yes or no")
	root.Flags().BoolVar(&o.table, "table", false, "print every impact as a table after the summary")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write trajectory samples to CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write result and trajectory to JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write result and trajectory chart to HTML file")
	root.Flags().StringVar(&o.wavPath, "wav", "", "write impact sound track to WAV file")

	root.AddCommand(newServeCmd(cfg, &o))
	return root
}

func newServeCmd(cfg *config.Config, o *opts) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator as an HTTP JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := newModel(*o)
			if err != nil {
				return err
			}
			return api.Serve(cmd.Context(), addr, m, slog.Default())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", cfg.Addr, "listen address")
	return cmd
}

func newModel(o opts) (*bounce.Model, error) {
	if err := bounce.ValidateGravity(o.gravity); err != nil {
		return nil, fmt.Errorf("gravity %v: %w", o.gravity, err)
	}
	if o.samples < 2 {
		return nil, fmt.Errorf("samples must be >= 2, got %d", o.samples)
	}
	return bounce.New(&bounce.Config{Gravity: o.gravity, Samples: o.samples}), nil
}

func run(ctx context.Context, cmd *cobra.Command, o opts, in io.Reader, out io.Writer) error {
	switch o.plot {
	case plotAsk, plotYes, plotNo:
	default:
		return fmt.Errorf("plot must be one of %s, %s, %s", plotAsk, plotYes, plotNo)
	}

	m, err := newModel(o)
	if err != nil {
		return err
	}

	var pre prompt.Preset
	if cmd.Flags().Changed("height") {
		pre.Height = &o.height
	}
	if cmd.Flags().Changed("height-min") {
		pre.HeightMin = &o.heightMin
	}
	if cmd.Flags().Changed("eta") {
		pre.Eta = &o.eta
	}

	pr := prompt.New(in, out, slog.Default())
	p, err := pr.Params(pre)
	if err != nil {
		return err
	}

	r, err := m.Simulate(p)
	if err != nil {
		return err
	}
	slog.Debug("simulated", "height", p.Height, "height_min", p.HeightMin, "eta", p.Eta,
		"gravity", r.Gravity, "bounces", r.Bounces, "total_time", r.TotalTime)

	fmt.Fprintln(out)
	fmt.Fprintln(out, report.Summary(r))
	if o.table {
		fmt.Fprintln(out)
		if err := printImpacts(out, m, p); err != nil {
			return err
		}
	}

	// trajectory is only sampled when something needs it
	var pts []bounce.Point
	trajectory := func() []bounce.Point {
		if pts == nil {
			pts = m.Trajectory(p)
		}
		return pts
	}

	if err := writeFiles(o, m, r, trajectory); err != nil {
		return err
	}

	plot := o.plot == plotYes
	if o.plot == plotAsk {
		plot, err = pr.Confirm(prompt.QuestionPlot)
		if errors.Is(err, io.EOF) {
			plot, err = false, nil
		}
		if err != nil {
			return err
		}
	}

	if !plot {
		fmt.Fprintln(out, report.NotPlotted)
		return nil
	}
	if err := showChart(ctx, trajectory(), p.HeightMin, slog.Default()); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	fmt.Fprintln(out, report.Plotted)
	return nil
}

func writeFiles(o opts, m *bounce.Model, r bounce.Result, trajectory func() []bounce.Point) error {
	reports := []struct {
		path  string
		write func(io.Writer, report.Report) error
	}{
		{o.csvPath, report.WriteCSV},
		{o.jsonPath, report.WriteJSON},
		{o.htmlPath, report.WriteHTML},
	}
	for _, rp := range reports {
		if rp.path == "" {
			continue
		}
		rep := report.New(r, trajectory())
		if err := writeFile(rp.path, func(f *os.File) error { return rp.write(f, rep) }); err != nil {
			return err
		}
		slog.Info("report written", "path", rp.path, "points", len(rep.Points))
	}

	if o.wavPath != "" {
		imps := m.Impacts(r.Params)
		if err := writeFile(o.wavPath, func(f *os.File) error { return sound.WriteWAV(f, imps, sound.Options{}) }); err != nil {
			return err
		}
		slog.Info("sound track written", "path", o.wavPath, "impacts", len(imps))
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
