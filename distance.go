package pulsecluster

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DistanceMetric maps two numeric sequences to a non-negative scalar where
// lower means more similar. Implementations must be symmetric and stateless;
// they are invoked concurrently from multiple goroutines on disjoint inputs.
//
// Sequences of unequal length are truncated to the shorter length (the prefix
// of each) before comparison. This is lossy but deterministic, and part of
// the contract: no error is raised for a length mismatch. Metrics panic when
// handed an empty sequence; callers feeding external data should validate
// through the pipeline entry points instead, which return errors.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance over the common
// prefix of the two sequences.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	a, b = truncatePair(a, b)
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// constSignalStd is the sample standard deviation below which a signal is
// treated as constant and its Pearson correlation as undefined.
const constSignalStd = 1e-8

// CorrelationMetric computes 1 - Pearson r, a distance in [0, 2].
//
// The result is 0 iff the sequences are perfectly positively correlated and
// 2 iff perfectly anti-correlated. When either sequence is near-constant the
// correlation is undefined and the metric returns the fixed sentinel 1.0
// rather than dividing by zero.
type CorrelationMetric struct{}

func (CorrelationMetric) Distance(a, b []float64) float64 {
	a, b = truncatePair(a, b)
	if stat.StdDev(a, nil) < constSignalStd || stat.StdDev(b, nil) < constSignalStd {
		return 1.0
	}
	return 1.0 - stat.Correlation(a, b, nil)
}

// truncatePair cuts both sequences to their common prefix length.
func truncatePair(a, b []float64) ([]float64, []float64) {
	if len(a) == 0 || len(b) == 0 {
		panic("pulsecluster: DistanceMetric called with an empty sequence")
	}
	if len(a) == len(b) {
		return a, b
	}
	n := min(len(a), len(b))
	return a[:n], b[:n]
}
