package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsedb/pulsecluster"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, "data", opts.DataDir)
	assert.Equal(t, "correlation", opts.Metric)
	assert.Equal(t, 256, opts.TargetLen)
	assert.Equal(t, 20, opts.MinClusterSize)
	assert.Equal(t, -1.0, opts.MaxDispersion)
}

func TestParseOptions_FlagsOverride(t *testing.T) {
	opts, err := parseOptions([]string{"-metric", "dtw", "-min-cluster-size", "5"})
	require.NoError(t, err)
	assert.Equal(t, "dtw", opts.Metric)
	assert.Equal(t, 5, opts.MinClusterSize)
}

func TestParseOptions_ConfigFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metric: dtw\nmax_depth: 9\nseed: 42\n"), 0o644))

	// Explicit flags win over the file, file wins over defaults.
	opts, err := parseOptions([]string{"-config", path, "-metric", "euclidean"})
	require.NoError(t, err)
	assert.Equal(t, "euclidean", opts.Metric)
	assert.Equal(t, 9, opts.MaxDepth)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 256, opts.TargetLen) // untouched default
}

func TestParseOptions_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\tmetric: dtw\n"), 0o644))

	_, err := parseOptions([]string{"-config", path})
	assert.Error(t, err)
}

func TestBuildMetric(t *testing.T) {
	opts := defaultOptions()

	opts.Metric = "correlation"
	m, err := buildMetric(opts)
	require.NoError(t, err)
	assert.IsType(t, pulsecluster.CorrelationMetric{}, m)

	opts.Metric = "dtw"
	opts.DTWWindow = 0.1
	opts.TargetLen = 256
	m, err = buildMetric(opts)
	require.NoError(t, err)
	assert.Equal(t, pulsecluster.DTWMetric{Window: 25}, m)

	// A tiny fraction still yields at least one sample of slack.
	opts.DTWWindow = 0.0001
	m, err = buildMetric(opts)
	require.NoError(t, err)
	assert.Equal(t, pulsecluster.DTWMetric{Window: 1}, m)

	opts.Metric = "mahalanobis"
	_, err = buildMetric(opts)
	assert.Error(t, err)
}

func TestRun_EndToEndSyntheticDemo(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "reports")

	opts := defaultOptions()
	opts.DataDir = filepath.Join(t.TempDir(), "no-data")
	opts.OutDir = outDir
	opts.TargetLen = 64
	opts.MinClusterSize = 10
	opts.Plots = 4
	opts.Workers = 2

	require.NoError(t, run(opts))

	for _, name := range []string{
		"clusters.json", "closest_pairs.json", "kadane.json",
		"SUMMARY.md", "SUMMARY.html", "report.xlsx",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	entries, err := os.ReadDir(filepath.Join(outDir, "plots"))
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}
