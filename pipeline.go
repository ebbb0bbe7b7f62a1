package pulsecluster

import (
	"runtime"
	"slices"
)

// Config controls a full analysis run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Partition controls the divide-and-conquer partitioner.
	Partition PartitionConfig

	// Metric is the distance function used to compare two series.
	// Built-in: CorrelationMetric, DTWMetric, EuclideanMetric. Use
	// DistanceFunc to wrap a custom function. Default: CorrelationMetric.
	Metric DistanceMetric

	// Transform selects the first-difference transform for activity scans.
	// Default: TransformAbsDiff.
	Transform Transform

	// Workers controls the number of goroutines for the per-cluster
	// closest-pair stage and the per-series activity stage. 0 means use
	// runtime.NumCPU(). The partitioner itself is sequential so that one
	// seeded RNG stream stays reproducible.
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Partition: DefaultPartitionConfig(),
		Metric:    CorrelationMetric{},
		Transform: TransformAbsDiff,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = CorrelationMetric{}
	}
	if cfg.Transform == "" {
		cfg.Transform = TransformAbsDiff
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// Result contains the output of a full analysis run.
type Result struct {
	// Clusters is a partition of the input ids: disjoint, non-empty, and
	// covering every id exactly once.
	Clusters [][]string

	// ClosestPairs[i] is the most similar pair inside Clusters[i], or nil
	// for clusters with fewer than two members.
	ClosestPairs []*ClosestPairResult

	// Activity maps each series id to its most active interval in
	// first-difference index space.
	Activity map[string]ActivityInterval
}

// Analyze runs the full pipeline over series: partition the ids, find the
// closest pair inside every cluster, and scan every series for its most
// active interval. Ids are taken in sorted order, so output is reproducible
// for a fixed Partition seed. Returns an error if the config is invalid or
// any series has fewer than 2 samples.
func Analyze(series map[string][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)

	ids := make([]string, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	clusters, err := Partition(ids, series, cfg.Metric, cfg.Partition)
	if err != nil {
		return nil, err
	}

	pairs := ClosestPairsParallel(clusters, series, cfg.Metric, cfg.Workers)

	activity, err := ActivityIntervalsParallel(series, cfg.Transform, cfg.Workers)
	if err != nil {
		return nil, err
	}

	return &Result{Clusters: clusters, ClosestPairs: pairs, Activity: activity}, nil
}
