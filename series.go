package pulsecluster

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySequence reports a sequence with no samples where at least one
	// is required.
	ErrEmptySequence = errors.New("pulsecluster: empty sequence")

	// ErrShortSeries reports a series too short for the first-difference
	// transform (fewer than 2 samples).
	ErrShortSeries = errors.New("pulsecluster: series shorter than 2 samples")
)

// zScoreEps keeps the z-score denominator non-zero for constant signals.
const zScoreEps = 1e-8

// ZScore returns a fresh slice with x standardized to zero mean and unit
// standard deviation. Constant signals map to (near) all zeros.
func ZScore(x []float64) []float64 {
	mean, std := stat.MeanStdDev(x, nil)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - mean) / (std + zScoreEps)
	}
	return out
}

// Resample linearly interpolates x onto targetLen evenly spaced sample
// positions spanning the original index range. The endpoints are preserved.
func Resample(x []float64, targetLen int) []float64 {
	out := make([]float64, targetLen)
	if targetLen == 0 || len(x) == 0 {
		return out
	}
	if len(x) == 1 {
		for i := range out {
			out[i] = x[0]
		}
		return out
	}
	for i := range out {
		var pos float64
		if targetLen > 1 {
			pos = float64(i) * float64(len(x)-1) / float64(targetLen-1)
		}
		lo := int(math.Floor(pos))
		if lo >= len(x)-1 {
			out[i] = x[len(x)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = x[lo]*(1-frac) + x[lo+1]*frac
	}
	return out
}

// PreprocessSeries z-scores every series and, when targetLen > 0, resamples
// each to targetLen samples. Input slices are never modified. Series shorter
// than 2 samples are rejected, as is a targetLen of 1.
func PreprocessSeries(series map[string][]float64, targetLen int) (map[string][]float64, error) {
	if targetLen == 1 {
		return nil, fmt.Errorf("pulsecluster: target length must be 0 or >= 2, got 1")
	}
	out := make(map[string][]float64, len(series))
	for id, x := range series {
		if len(x) < 2 {
			return nil, fmt.Errorf("series %q: %w: got %d samples", id, ErrShortSeries, len(x))
		}
		y := ZScore(x)
		if targetLen > 0 && len(y) != targetLen {
			y = Resample(y, targetLen)
		}
		out[id] = y
	}
	return out, nil
}

// validateSeries checks that every id has a series with at least 2 finite-use
// samples. The metrics themselves tolerate length >= 1, but the activity scan
// and preprocessing require a defined first difference.
func validateSeries(ids []string, series map[string][]float64) error {
	for _, id := range ids {
		x, ok := series[id]
		if !ok {
			return fmt.Errorf("pulsecluster: no series for id %q", id)
		}
		if len(x) == 0 {
			return fmt.Errorf("series %q: %w", id, ErrEmptySequence)
		}
		if len(x) < 2 {
			return fmt.Errorf("series %q: %w: got %d samples", id, ErrShortSeries, len(x))
		}
	}
	return nil
}
