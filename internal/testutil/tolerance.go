package testutil

import (
	"math"
	"testing"
)

// MaxAbsDiff returns the largest absolute difference over the common prefix
// of a and b and the index where it occurs.
func MaxAbsDiff(a, b []float64) (float64, int) {
	worst, at := 0.0, 0
	for i := range min(len(a), len(b)) {
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst, at = d, i
		}
	}
	return worst, at
}

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and agree within eps everywhere.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if d, i := MaxAbsDiff(got, want); d > eps {
		t.Fatalf("index %d: got %v, want %v (diff %g > %g)", i, got[i], want[i], d, eps)
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxStep returns the largest jump between adjacent samples and the index
// after the jump. Clicks show up as outliers.
func MaxStep(data []float64) (float64, int) {
	if len(data) < 2 {
		return 0, 0
	}
	step, i := MaxAbsDiff(data[1:], data[:len(data)-1])
	return step, i + 1
}
