package testutil

import (
	"math"
	"testing"
)

func TestSineBlocksJoin(t *testing.T) {
	whole := Sine(440, 48000, 0.5, 0, 200)
	a := Sine(440, 48000, 0.5, 0, 120)
	b := Sine(440, 48000, 0.5, 120, 80)
	RequireSliceNearlyEqual(t, append(a, b...), whole, 0)
}

func TestNoiseReproducible(t *testing.T) {
	a := Noise(7, 1, 64)
	b := Noise(7, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(4, 2)
	if imp[2] != 1 || imp[0] != 0 {
		t.Fatalf("unexpected impulse %v", imp)
	}
	if out := Impulse(4, 9); RMS(out) != 0 {
		t.Fatal("out of range position must give silence")
	}
}

func TestRMSOfSine(t *testing.T) {
	got := RMS(Sine(1000, 48000, 1, 0, 4800))
	if math.Abs(got-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("RMS = %v, want 1/sqrt2", got)
	}
}

func TestSineGainIdentity(t *testing.T) {
	g := SineGain(func([]float64) {}, 1000, 48000, 100, 4800, 64)
	if math.Abs(g-1) > 1e-12 {
		t.Fatalf("gain = %v, want 1", g)
	}
}
