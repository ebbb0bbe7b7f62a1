package pulsecluster

import "math"

// DTWMetric computes the dynamic time warping distance between two sequences,
// restricted to a Sakoe-Chiba band.
//
// Window is the band half-width in samples; cell (i, j) of the cost table is
// only computed when |i-j| is within the band, bounding work to
// O((n+m)*Window) instead of O(n*m). Window <= 0 disables the constraint.
//
// The effective half-width is max(Window, |len(a)-len(b)|), so a feasible
// alignment path always exists even when the requested window is narrower
// than the length difference. Note that this clamp can silently widen a
// narrow window far beyond the request when input lengths differ
// substantially.
type DTWMetric struct {
	Window int
}

func (m DTWMetric) Distance(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		panic("pulsecluster: DistanceMetric called with an empty sequence")
	}
	n, cols := len(a), len(b)

	window := m.Window
	if window <= 0 {
		window = max(n, cols)
	}
	window = max(window, abs(n-cols))

	inf := math.Inf(1)
	d := make([][]float64, n+1)
	for i := range d {
		d[i] = make([]float64, cols+1)
		for j := range d[i] {
			d[i][j] = inf
		}
	}
	d[0][0] = 0

	for i := 1; i <= n; i++ {
		jStart := max(1, i-window)
		jEnd := min(cols, i+window)
		for j := jStart; j <= jEnd; j++ {
			diff := a[i-1] - b[j-1]
			d[i][j] = diff*diff + min(d[i-1][j], d[i][j-1], d[i-1][j-1])
		}
	}

	return math.Sqrt(d[n][cols])
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
