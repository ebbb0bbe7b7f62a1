package pulsecluster

import (
	"errors"
	"math"
	"testing"
)

func TestZScore_MeanAndScale(t *testing.T) {
	x := []float64{2, 4, 6, 8, 10}
	z := ZScore(x)

	var sum float64
	for _, v := range z {
		sum += v
	}
	if mean := sum / float64(len(z)); !almostEqual(mean, 0, 1e-9) {
		t.Errorf("expected zero mean, got %v", mean)
	}

	// Symmetric input: first and last z-scores mirror each other.
	if !almostEqual(z[0], -z[len(z)-1], 1e-9) {
		t.Errorf("expected symmetric z-scores, got %v and %v", z[0], z[len(z)-1])
	}
}

func TestZScore_ConstantSignal(t *testing.T) {
	z := ZScore([]float64{3, 3, 3, 3})
	for i, v := range z {
		if !almostEqual(v, 0, 1e-6) {
			t.Errorf("z[%d] = %v, expected ~0 for constant signal", i, v)
		}
	}
}

func TestZScore_DoesNotMutateInput(t *testing.T) {
	x := []float64{1, 2, 3}
	ZScore(x)
	if x[0] != 1 || x[1] != 2 || x[2] != 3 {
		t.Error("input slice was modified")
	}
}

func TestResample_PreservesEndpoints(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := Resample(x, 9)
	if len(y) != 9 {
		t.Fatalf("expected length 9, got %d", len(y))
	}
	if y[0] != 0 || y[8] != 4 {
		t.Errorf("endpoints not preserved: %v, %v", y[0], y[8])
	}
	// Linear input stays linear under linear interpolation.
	for i, v := range y {
		want := float64(i) * 0.5
		if !almostEqual(v, want, 1e-9) {
			t.Errorf("y[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestResample_Downsample(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	y := Resample(x, 3)
	want := []float64{0, 4, 8}
	for i := range want {
		if !almostEqual(y[i], want[i], 1e-9) {
			t.Errorf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestResample_SameLength(t *testing.T) {
	x := []float64{1.5, -0.5, 2.5}
	y := Resample(x, 3)
	for i := range x {
		if !almostEqual(y[i], x[i], 1e-9) {
			t.Errorf("y[%d] = %v, want %v", i, y[i], x[i])
		}
	}
}

func TestPreprocessSeries_ResamplesToTarget(t *testing.T) {
	series := map[string][]float64{
		"short": {1, 2, 3, 4},
		"long":  make([]float64, 100),
	}
	for i := range series["long"] {
		series["long"][i] = math.Sin(float64(i) / 10)
	}

	out, err := PreprocessSeries(series, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for id, x := range out {
		if len(x) != 16 {
			t.Errorf("series %q: expected length 16, got %d", id, len(x))
		}
	}
	if len(series["short"]) != 4 {
		t.Error("input map was modified")
	}
}

func TestPreprocessSeries_NoTargetKeepsLength(t *testing.T) {
	series := map[string][]float64{"a": {1, 2, 3, 4, 5}}
	out, err := PreprocessSeries(series, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out["a"]) != 5 {
		t.Errorf("expected length preserved, got %d", len(out["a"]))
	}
}

func TestPreprocessSeries_RejectsShortSeries(t *testing.T) {
	series := map[string][]float64{"a": {1}}
	_, err := PreprocessSeries(series, 0)
	if !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
}

func TestPreprocessSeries_RejectsTargetLenOne(t *testing.T) {
	series := map[string][]float64{"a": {1, 2, 3}}
	if _, err := PreprocessSeries(series, 1); err == nil {
		t.Error("expected error for target length 1")
	}
}
