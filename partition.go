package pulsecluster

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/montanaflynn/stats"
)

// PartitionConfig controls the divide-and-conquer partitioner.
// Start with [DefaultPartitionConfig] and override the fields you need.
type PartitionConfig struct {
	// MaxDepth bounds the recursion depth; a set reached at MaxDepth is
	// emitted as a single cluster without splitting. Must be >= 0.
	// Default: 6.
	MaxDepth int

	// MinClusterSize stops splitting sets of this size or smaller.
	// Must be >= 1. Default: 20.
	MinClusterSize int

	// MaxDispersion stops splitting a set whose average pairwise distance
	// (all C(k,2) pairs, O(k²) metric calls) is at or below this value.
	// Negative disables the check. Default: -1 (disabled).
	MaxDispersion float64

	// Seed seeds the pivot-selection RNG when Rand is nil, making runs
	// reproducible. Default: 0.
	Seed int64

	// Rand overrides the pivot-selection RNG. The partitioner never reads
	// the global math/rand source; recursion is sequential depth-first, so
	// one stream yields reproducible output for a fixed seed.
	Rand *rand.Rand
}

// DefaultPartitionConfig returns a PartitionConfig with the standard defaults.
func DefaultPartitionConfig() PartitionConfig {
	return PartitionConfig{
		MaxDepth:       6,
		MinClusterSize: 20,
		MaxDispersion:  -1,
	}
}

// validatePartitionConfig checks that cfg fields are valid and returns a
// descriptive error if not.
func validatePartitionConfig(cfg *PartitionConfig) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("pulsecluster: MaxDepth must be >= 0, got %d", cfg.MaxDepth)
	}
	if cfg.MinClusterSize < 1 {
		return fmt.Errorf("pulsecluster: MinClusterSize must be >= 1, got %d", cfg.MinClusterSize)
	}
	return nil
}

// Partition splits ids into disjoint clusters by recursively dividing at the
// median distance to a randomly chosen pivot. The union of the returned
// clusters equals ids exactly: every id appears in exactly one cluster, and
// every cluster is non-empty. ids itself is not modified. A nil metric
// defaults to CorrelationMetric.
func Partition(ids []string, series map[string][]float64, metric DistanceMetric, cfg PartitionConfig) ([][]string, error) {
	if err := validatePartitionConfig(&cfg); err != nil {
		return nil, err
	}
	if metric == nil {
		metric = CorrelationMetric{}
	}
	if err := validateSeries(ids, series); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	p := &partitioner{series: series, metric: metric, cfg: cfg, rng: rng}
	return p.split(slices.Clone(ids), 0), nil
}

type partitioner struct {
	series map[string][]float64
	metric DistanceMetric
	cfg    PartitionConfig
	rng    *rand.Rand
}

// split recurses depth-first. Termination rules are checked in order — size,
// depth, dispersion — and any one emits ids as a single cluster.
func (p *partitioner) split(ids []string, depth int) [][]string {
	if len(ids) <= p.cfg.MinClusterSize || depth >= p.cfg.MaxDepth {
		return [][]string{ids}
	}
	if p.cfg.MaxDispersion >= 0 && p.dispersion(ids) <= p.cfg.MaxDispersion {
		return [][]string{ids}
	}

	left, right := p.medianSplit(ids)
	if len(right) == 0 {
		// All remaining distances tied at or below the median; splitting
		// again would never make progress.
		return [][]string{left}
	}

	clusters := p.split(left, depth+1)
	return append(clusters, p.split(right, depth+1)...)
}

// medianSplit picks a random pivot and splits the remaining members by median
// distance to it. Members whose distance ties the median land in left,
// alongside the pivot, so heavy ties can skew the split.
func (p *partitioner) medianSplit(ids []string) (left, right []string) {
	pivotID := ids[p.rng.Intn(len(ids))]
	pivot := p.series[pivotID]

	rest := make([]string, 0, len(ids)-1)
	dists := make([]float64, 0, len(ids)-1)
	for _, id := range ids {
		if id == pivotID {
			continue
		}
		rest = append(rest, id)
		dists = append(dists, p.metric.Distance(p.series[id], pivot))
	}
	if len(rest) == 0 {
		return ids, nil
	}

	med, err := stats.Median(dists)
	if err != nil {
		return ids, nil
	}

	left = make([]string, 0, len(rest)/2+1)
	for i, id := range rest {
		if dists[i] <= med {
			left = append(left, id)
		} else {
			right = append(right, id)
		}
	}
	left = append(left, pivotID)
	return left, right
}

// dispersion is the average pairwise distance inside ids.
func (p *partitioner) dispersion(ids []string) float64 {
	if len(ids) < 2 {
		return 0
	}
	var sum float64
	var count int
	for i := 0; i < len(ids); i++ {
		a := p.series[ids[i]]
		for j := i + 1; j < len(ids); j++ {
			sum += p.metric.Distance(a, p.series[ids[j]])
			count++
		}
	}
	return sum / float64(count)
}
