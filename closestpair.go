package pulsecluster

import "math"

// ClosestPairResult identifies the two most similar members of a cluster.
type ClosestPairResult struct {
	A        string
	B        string
	Distance float64
}

// ClosestPair exhaustively evaluates every unordered pair in ids and returns
// the pair with the minimum distance. Pairs are enumerated in the order of
// ids and ties keep the first pair encountered, so the result is
// deterministic for a fixed ids order. Returns nil when ids has fewer than
// two members. O(k²) metric evaluations for k ids.
func ClosestPair(ids []string, series map[string][]float64, metric DistanceMetric) *ClosestPairResult {
	if len(ids) < 2 {
		return nil
	}

	best := &ClosestPairResult{Distance: math.Inf(1)}
	for i := 0; i < len(ids); i++ {
		a := series[ids[i]]
		for j := i + 1; j < len(ids); j++ {
			if d := metric.Distance(a, series[ids[j]]); d < best.Distance {
				best.A, best.B, best.Distance = ids[i], ids[j], d
			}
		}
	}
	return best
}
