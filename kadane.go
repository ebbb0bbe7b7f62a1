package pulsecluster

import (
	"fmt"
	"math"
)

// Transform selects the first-difference transform applied before the
// maximum-subarray scan.
type Transform string

const (
	// TransformAbsDiff scores activity as |x[i+1] - x[i]|.
	TransformAbsDiff Transform = "absdiff"

	// TransformSquaredDiff scores activity as (x[i+1] - x[i])^2,
	// emphasizing large jumps.
	TransformSquaredDiff Transform = "sqdiff"
)

// ActivityInterval is a half-open index range [L, R) into a series'
// first-difference space, plus the maximum subarray sum over that range.
type ActivityInterval struct {
	L     int
	R     int
	Score float64
}

// MaxSubarray runs Kadane's algorithm over arr and returns the half-open
// interval [l, r) with the maximum contiguous sum, along with that sum.
// Whenever the carried prefix sum is non-positive the scan restarts at the
// current element, so an all-negative input selects the single largest
// element. O(len(arr)) time, O(1) extra space.
func MaxSubarray(arr []float64) (l, r int, sum float64) {
	maxSoFar := math.Inf(-1)
	var maxEndingHere float64
	start := 0
	for i, x := range arr {
		if maxEndingHere <= 0 {
			maxEndingHere = x
			start = i
		} else {
			maxEndingHere += x
		}
		if maxEndingHere > maxSoFar {
			maxSoFar = maxEndingHere
			l = start
			r = i + 1
		}
	}
	return l, r, maxSoFar
}

// MostActiveInterval applies the selected first-difference transform to x and
// returns the maximum-subarray interval of the transformed sequence. Indices
// are in difference space: 0 <= L < R <= len(x)-1. An empty transform
// defaults to TransformAbsDiff. x must have at least 2 samples.
func MostActiveInterval(x []float64, transform Transform) (ActivityInterval, error) {
	if len(x) < 2 {
		return ActivityInterval{}, fmt.Errorf("%w: got %d samples", ErrShortSeries, len(x))
	}

	y := make([]float64, len(x)-1)
	switch transform {
	case TransformAbsDiff, "":
		for i := range y {
			y[i] = math.Abs(x[i+1] - x[i])
		}
	case TransformSquaredDiff:
		for i := range y {
			d := x[i+1] - x[i]
			y[i] = d * d
		}
	default:
		return ActivityInterval{}, fmt.Errorf("pulsecluster: unknown transform %q", transform)
	}

	l, r, score := MaxSubarray(y)
	return ActivityInterval{L: l, R: r, Score: score}, nil
}
