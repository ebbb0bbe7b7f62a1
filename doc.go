// Package pulsecluster clusters fixed-length numeric time-series segments
// without machine learning, using a recursive divide-and-conquer partitioner
// over interchangeable distance metrics.
//
// The package combines four independent algorithms:
//
//   - Distance metrics: correlation distance (1 - Pearson r) and dynamic time
//     warping restricted to a Sakoe-Chiba band.
//   - A recursive partitioner that splits an id set at the median distance to
//     a randomly chosen pivot, bounded by depth, minimum cluster size and an
//     optional dispersion threshold.
//   - A brute-force closest-pair scan inside each cluster.
//   - A maximum-subarray ("Kadane") scan over first differences that finds
//     each series' most active interval.
//
// Basic usage:
//
//	cfg := pulsecluster.DefaultConfig()
//	cfg.Partition.MinClusterSize = 10
//	cfg.Partition.Seed = 42
//	result, err := pulsecluster.Analyze(series, cfg)
//	// result.Clusters is a partition of the series ids
//	// result.ClosestPairs[i] is the most similar pair inside Clusters[i]
//	// result.Activity[id] is the series' most active interval
//
// The individual stages are also exposed directly ([Partition], [ClosestPair],
// [MostActiveInterval]) for callers that want to drive the pipeline
// themselves. All components are pure functions over their inputs: no shared
// mutable state, safe to invoke concurrently on disjoint data, and
// reproducible for a fixed partition seed.
//
// CSV loading lives in the seriesio subpackage, report serialization in
// report, and PNG rendering in plotting.
package pulsecluster
