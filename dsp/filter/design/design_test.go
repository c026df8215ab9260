package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

var testSampleRates = []float64{22050, 44100, 48000, 88200, 96000, 192000}

func TestButterworthQ(t *testing.T) {
	if q := ButterworthQ(2, 0); !almostEqual(q, 1/math.Sqrt2, 1e-12) {
		t.Fatalf("order 2 Q = %v, want 1/sqrt2", q)
	}

	// Product of stage Qs of an even Butterworth equals 1/sqrt2.
	for _, order := range []int{2, 4, 6, 8} {
		prod := 1.0
		for i := 0; i < order/2; i++ {
			prod *= ButterworthQ(order, i)
		}
		if !almostEqual(prod, 1/math.Sqrt2, 1e-9) {
			t.Fatalf("order %d: Q product = %v", order, prod)
		}
	}
}

func TestCascade_StageCountFollowsOrder(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: -1, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 3, want: 3},
		{in: 4, want: 4},
		{in: 9, want: 4},
	}
	for _, tt := range tests {
		if got := HighpassCascade(100, 48000, tt.in).N; got != tt.want {
			t.Fatalf("HighpassCascade stages(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := LowpassCascade(100, 48000, tt.in).N; got != tt.want {
			t.Fatalf("LowpassCascade stages(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCascade_AllDesignsStable(t *testing.T) {
	freqs := []float64{-5, 0, 1, 20, 100, 1000, 5000, 15000, 20000, 1e6, math.NaN()}
	for _, sr := range testSampleRates {
		for _, f := range freqs {
			for n := 1; n <= biquad.MaxStages; n++ {
				for _, cc := range []biquad.CascadeCoefficients{
					HighpassCascade(f, sr, n),
					LowpassCascade(f, sr, n),
				} {
					for i, c := range cc.Active() {
						if !c.IsStable() {
							t.Fatalf("sr=%v f=%v n=%d stage %d unstable: %+v", sr, f, n, i, c)
						}
					}
				}
			}
		}
	}
}

func TestHighpassCascade_Minus3dBAtCutoff(t *testing.T) {
	for n := 1; n <= biquad.MaxStages; n++ {
		cc := HighpassCascade(1000, 48000, n)
		if db := cc.MagnitudeDB(1000, 48000); !almostEqual(db, -3.0103, 0.01) {
			t.Fatalf("n=%d: %.4f dB at cutoff, want -3.01", n, db)
		}
		if db := cc.MagnitudeDB(20000, 48000); !almostEqual(db, 0, 0.05) {
			t.Fatalf("n=%d: %.4f dB in passband, want 0", n, db)
		}
	}
}

func TestLowpassCascade_Minus3dBAtCutoff(t *testing.T) {
	for n := 1; n <= biquad.MaxStages; n++ {
		cc := LowpassCascade(5000, 48000, n)
		if db := cc.MagnitudeDB(5000, 48000); !almostEqual(db, -3.0103, 0.01) {
			t.Fatalf("n=%d: %.4f dB at cutoff, want -3.01", n, db)
		}
		if db := cc.MagnitudeDB(50, 48000); !almostEqual(db, 0, 0.01) {
			t.Fatalf("n=%d: %.4f dB in passband, want 0", n, db)
		}
	}
}

func TestHighpassCascade_SlopeTwoOctavesBelow(t *testing.T) {
	// Each stage adds 12 dB/octave; two octaves below cutoff at 48 dB/oct
	// lands near -48 dB.
	for n := 1; n <= biquad.MaxStages; n++ {
		cc := HighpassCascade(1000, 48000, n)
		want := -12.0 * float64(n) * 2
		db := cc.MagnitudeDB(250, 48000)
		if math.Abs(db-want) > 1.5 {
			t.Fatalf("n=%d: %.2f dB at 250 Hz, want about %.0f", n, db, want)
		}
	}
}

func TestLowpassCascade_SteeperWithMoreStages(t *testing.T) {
	prev := 0.0
	for n := 1; n <= biquad.MaxStages; n++ {
		db := LowpassCascade(1000, 48000, n).MagnitudeDB(3000, 48000)
		if db >= prev {
			t.Fatalf("n=%d: %.2f dB not steeper than %.2f dB", n, db, prev)
		}
		prev = db
	}
}

func TestPeakFilter_ResponseShape(t *testing.T) {
	c := PeakFilter(1000, 48000, 1, 2)

	if g := c.Magnitude(1000, 48000); !almostEqual(g, 2, 1e-9) {
		t.Fatalf("gain at center = %v, want 2", g)
	}
	for _, f := range []float64{20, 100, 200} {
		if g := c.Magnitude(f, 48000); !almostEqual(g, 1, 0.05) {
			t.Fatalf("gain at %v Hz = %v, want about 1", f, g)
		}
	}
	for _, f := range []float64{5000, 10000, 20000} {
		if g := c.Magnitude(f, 48000); !almostEqual(g, 1, 0.05) {
			t.Fatalf("gain at %v Hz = %v, want about 1", f, g)
		}
	}
}

func TestPeakFilter_UnityGainIsFlat(t *testing.T) {
	for _, q := range []float64{0.1, 1, 10} {
		c := PeakFilter(750, 44100, q, 1)
		for _, f := range []float64{20, 200, 750, 3000, 20000} {
			if g := c.Magnitude(f, 44100); !almostEqual(g, 1, 1e-9) {
				t.Fatalf("q=%v f=%v: gain %v, want 1", q, f, g)
			}
		}
	}
}

func TestPeak_DBMatchesLinear(t *testing.T) {
	a := Peak(2000, 12, 0.7, 48000)
	if db := a.MagnitudeDB(2000, 48000); !almostEqual(db, 12, 1e-3) {
		t.Fatalf("peak at center = %v dB, want 12", db)
	}
	b := Peak(2000, -24, 0.7, 48000)
	if db := b.MagnitudeDB(2000, 48000); !almostEqual(db, -24, 1e-3) {
		t.Fatalf("cut at center = %v dB, want -24", db)
	}
}

func TestPeakFilter_ClampsBadInputs(t *testing.T) {
	tests := []struct {
		name                string
		center, sr, q, gain float64
	}{
		{name: "zero q", center: 1000, sr: 48000, q: 0, gain: 2},
		{name: "nan q", center: 1000, sr: 48000, q: math.NaN(), gain: 2},
		{name: "negative gain", center: 1000, sr: 48000, q: 1, gain: -3},
		{name: "above nyquist", center: 40000, sr: 48000, q: 1, gain: 4},
		{name: "zero center", center: 0, sr: 48000, q: 1, gain: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PeakFilter(tt.center, tt.sr, tt.q, tt.gain)
			if !c.IsStable() {
				t.Fatalf("unstable coefficients %+v", c)
			}
		})
	}

	if c := PeakFilter(1000, 48000, 1, -1); !almostEqual(c.Magnitude(1000, 48000), 1, 1e-9) {
		t.Fatal("non-positive gain must behave as unity")
	}
}

func TestDesigners_InvalidSampleRateIsIdentity(t *testing.T) {
	for _, sr := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if c := Highpass(100, 0.7, sr); !c.IsIdentity() {
			t.Fatalf("Highpass sr=%v: %+v", sr, c)
		}
		if c := PeakFilter(100, sr, 1, 2); !c.IsIdentity() {
			t.Fatalf("PeakFilter sr=%v: %+v", sr, c)
		}
		cc := LowpassCascade(100, sr, 2)
		for _, c := range cc.Active() {
			if !c.IsIdentity() {
				t.Fatalf("LowpassCascade sr=%v: %+v", sr, c)
			}
		}
	}
}

func TestClampFrequency(t *testing.T) {
	if f := ClampFrequency(30000, 44100); !almostEqual(f, 0.499*44100, 1e-9) {
		t.Fatalf("ClampFrequency = %v", f)
	}
	if f := ClampFrequency(-1, 44100); f != MinFrequency {
		t.Fatalf("ClampFrequency = %v, want %v", f, MinFrequency)
	}
}

func TestDesigners_Deterministic(t *testing.T) {
	a := HighpassCascade(123.4, 48000, 4)
	b := HighpassCascade(123.4, 48000, 4)
	if a != b {
		t.Fatal("designs must be bit-identical for identical inputs")
	}
}

func BenchmarkHighpassCascade4(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = HighpassCascade(80, 48000, 4)
	}
}
