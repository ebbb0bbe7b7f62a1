// Command pulseclust clusters fixed-length time-series segments from CSV
// files and writes JSON, Markdown, HTML and XLSX reports plus per-series
// plots. With no input data it runs on a synthetic demo set.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pulsedb/pulsecluster"
	"github.com/pulsedb/pulsecluster/plotting"
	"github.com/pulsedb/pulsecluster/report"
	"github.com/pulsedb/pulsecluster/seriesio"
)

// minLoadLen filters out CSV files too short to be meaningful segments.
const minLoadLen = 50

// demoSeriesCount is the size of the synthetic fallback set.
const demoSeriesCount = 100

type options struct {
	DataDir        string  `yaml:"data_dir"`
	OutDir         string  `yaml:"out_dir"`
	Metric         string  `yaml:"metric"`
	DTWWindow      float64 `yaml:"dtw_window"`
	TargetLen      int     `yaml:"target_len"`
	MaxDepth       int     `yaml:"max_depth"`
	MinClusterSize int     `yaml:"min_cluster_size"`
	MaxDispersion  float64 `yaml:"max_dispersion"`
	Seed           int64   `yaml:"seed"`
	Workers        int     `yaml:"workers"`
	Plots          int     `yaml:"plots"`
}

func defaultOptions() options {
	return options{
		DataDir:        "data",
		OutDir:         "reports",
		Metric:         "correlation",
		DTWWindow:      0.1,
		TargetLen:      256,
		MaxDepth:       6,
		MinClusterSize: 20,
		MaxDispersion:  -1,
		Seed:           7,
		Plots:          60,
	}
}

// parseOptions resolves configuration with flag > YAML file > default
// precedence: flags the user left untouched fall back to the config file,
// which falls back to defaults.
func parseOptions(args []string) (options, error) {
	opts := defaultOptions()

	fs := flag.NewFlagSet("pulseclust", flag.ExitOnError)
	configPath := fs.String("config", "", "optional YAML config file")
	fs.StringVar(&opts.DataDir, "data-dir", opts.DataDir, "directory of input CSV series")
	fs.StringVar(&opts.OutDir, "out-dir", opts.OutDir, "directory for report output")
	fs.StringVar(&opts.Metric, "metric", opts.Metric, "distance metric: correlation, dtw or euclidean")
	fs.Float64Var(&opts.DTWWindow, "dtw-window", opts.DTWWindow, "DTW window as a fraction of target length")
	fs.IntVar(&opts.TargetLen, "target-len", opts.TargetLen, "resample every series to this length")
	fs.IntVar(&opts.MaxDepth, "max-depth", opts.MaxDepth, "maximum partition recursion depth")
	fs.IntVar(&opts.MinClusterSize, "min-cluster-size", opts.MinClusterSize, "stop splitting sets at or below this size")
	fs.Float64Var(&opts.MaxDispersion, "max-dispersion", opts.MaxDispersion, "dispersion early-stop threshold, negative disables")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "pivot-selection and demo-data seed")
	fs.IntVar(&opts.Workers, "workers", opts.Workers, "goroutines for parallel stages, 0 = NumCPU")
	fs.IntVar(&opts.Plots, "plots", opts.Plots, "maximum number of series plots, 0 = all")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if *configPath != "" {
		fileOpts := defaultOptions()
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			return opts, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fileOpts); err != nil {
			return opts, fmt.Errorf("parsing config %s: %w", *configPath, err)
		}

		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		merge := func(name string, apply func()) {
			if !set[name] {
				apply()
			}
		}
		merge("data-dir", func() { opts.DataDir = fileOpts.DataDir })
		merge("out-dir", func() { opts.OutDir = fileOpts.OutDir })
		merge("metric", func() { opts.Metric = fileOpts.Metric })
		merge("dtw-window", func() { opts.DTWWindow = fileOpts.DTWWindow })
		merge("target-len", func() { opts.TargetLen = fileOpts.TargetLen })
		merge("max-depth", func() { opts.MaxDepth = fileOpts.MaxDepth })
		merge("min-cluster-size", func() { opts.MinClusterSize = fileOpts.MinClusterSize })
		merge("max-dispersion", func() { opts.MaxDispersion = fileOpts.MaxDispersion })
		merge("seed", func() { opts.Seed = fileOpts.Seed })
		merge("workers", func() { opts.Workers = fileOpts.Workers })
		merge("plots", func() { opts.Plots = fileOpts.Plots })
	}

	return opts, nil
}

// buildMetric maps the CLI metric name to a DistanceMetric. The DTW window
// is specified as a fraction of the target length, floored at one sample.
func buildMetric(opts options) (pulsecluster.DistanceMetric, error) {
	switch opts.Metric {
	case "correlation":
		return pulsecluster.CorrelationMetric{}, nil
	case "dtw":
		window := int(opts.DTWWindow * float64(opts.TargetLen))
		if window < 1 {
			window = 1
		}
		return pulsecluster.DTWMetric{Window: window}, nil
	case "euclidean":
		return pulsecluster.EuclideanMetric{}, nil
	default:
		return nil, fmt.Errorf("unknown metric %q (want correlation, dtw or euclidean)", opts.Metric)
	}
}

func run(opts options) error {
	raw, err := seriesio.LoadDir(opts.DataDir, minLoadLen)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		slog.Info("no input series found, generating synthetic demo",
			"data_dir", opts.DataDir, "count", demoSeriesCount, "seed", opts.Seed)
		raw = seriesio.Synthetic(demoSeriesCount, opts.TargetLen, opts.Seed)
	}

	series, err := pulsecluster.PreprocessSeries(raw, opts.TargetLen)
	if err != nil {
		return err
	}

	metric, err := buildMetric(opts)
	if err != nil {
		return err
	}

	cfg := pulsecluster.DefaultConfig()
	cfg.Metric = metric
	cfg.Workers = opts.Workers
	cfg.Partition.MaxDepth = opts.MaxDepth
	cfg.Partition.MinClusterSize = opts.MinClusterSize
	cfg.Partition.MaxDispersion = opts.MaxDispersion
	cfg.Partition.Seed = opts.Seed

	result, err := pulsecluster.Analyze(series, cfg)
	if err != nil {
		return err
	}
	slog.Info("analysis complete",
		"series", len(series), "clusters", len(result.Clusters), "metric", opts.Metric)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	doc := report.Clusters(result.Clusters, series)
	if err := report.WriteJSON(filepath.Join(opts.OutDir, "clusters.json"), doc); err != nil {
		return err
	}
	pairs := report.ClosestPairs(result.ClosestPairs)
	if err := report.WriteJSON(filepath.Join(opts.OutDir, "closest_pairs.json"), pairs); err != nil {
		return err
	}
	activity := report.Activity(result.Activity)
	if err := report.WriteJSON(filepath.Join(opts.OutDir, "kadane.json"), activity); err != nil {
		return err
	}

	plotsDir := filepath.Join(opts.OutDir, "plots")
	plotted, err := plotting.RenderDir(plotsDir, series, result.Activity, opts.Plots, opts.Workers)
	if err != nil {
		return err
	}
	slog.Info("plots rendered", "count", plotted, "dir", plotsDir)

	meta := report.NewRunMeta(opts.Metric, len(series), len(result.Clusters))
	meta.PlotCount = plotted
	meta.PlotsDir = plotsDir
	md := report.Summary(meta)
	if err := report.WriteMarkdown(filepath.Join(opts.OutDir, "SUMMARY.md"), md); err != nil {
		return err
	}
	if err := report.WriteHTML(filepath.Join(opts.OutDir, "SUMMARY.html"), []byte(md)); err != nil {
		return err
	}
	if err := report.WriteWorkbook(filepath.Join(opts.OutDir, "report.xlsx"), doc, pairs, activity); err != nil {
		return err
	}

	slog.Info("reports written", "dir", opts.OutDir, "run_id", meta.RunID)
	return nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}
