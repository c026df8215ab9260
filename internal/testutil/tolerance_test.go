package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, at := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if d != 1 || at != 2 {
		t.Fatalf("MaxAbsDiff = %v at %d, want 1 at 2", d, at)
	}

	if d, _ := MaxAbsDiff([]float64{1, 5}, []float64{1}); d != 0 {
		t.Fatalf("MaxAbsDiff over common prefix = %v, want 0", d)
	}
}

func TestMaxStep(t *testing.T) {
	step, at := MaxStep([]float64{0, 0.1, 0.2, 0.9, 1})
	if at != 3 || step < 0.69 || step > 0.71 {
		t.Fatalf("MaxStep = %v at %d, want 0.7 at 3", step, at)
	}

	if step, _ := MaxStep([]float64{4}); step != 0 {
		t.Fatalf("MaxStep of one sample = %v, want 0", step)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-13}, 1e-12)
	RequireFinite(t, []float64{0, -1, 1e300})
}
