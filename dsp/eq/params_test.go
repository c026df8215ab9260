package eq

import (
	"errors"
	"math"
	"testing"
)

func TestRange_SkewedNormalization(t *testing.T) {
	r := Param(ParamPeakFreq).Range

	if p := r.Normalize(20); p != 0 {
		t.Fatalf("Normalize(min) = %v", p)
	}
	if p := r.Normalize(20000); p != 1 {
		t.Fatalf("Normalize(max) = %v", p)
	}

	// Skew 0.25 puts 1 kHz just below the middle of the control travel
	// instead of at 5%.
	p := r.Normalize(1000)
	want := math.Pow((1000.0-20)/(20000-20), 0.25)
	if math.Abs(p-want) > 1e-12 || p < 0.45 || p > 0.5 {
		t.Fatalf("Normalize(1000) = %v, want %v", p, want)
	}

	if v := r.Denormalize(p); v != 1000 {
		t.Fatalf("Denormalize(Normalize(1000)) = %v", v)
	}
}

func TestRange_DenormalizeSnapsAndClamps(t *testing.T) {
	gain := Param(ParamPeakGain).Range
	if v := gain.Denormalize(0.5); v != 0 {
		t.Fatalf("gain midpoint = %v, want 0", v)
	}
	if v := gain.Denormalize(1.7); v != 24 {
		t.Fatalf("clamped = %v, want 24", v)
	}
	if v := gain.Snap(3.3); v != 3.5 {
		t.Fatalf("Snap(3.3) = %v, want 3.5", v)
	}
	q := Param(ParamPeakQ).Range
	if v := q.Snap(0.01); v != 0.1 {
		t.Fatalf("Snap(0.01) = %v, want 0.1", v)
	}
}

func TestRange_RoundTripOverGrid(t *testing.T) {
	for _, p := range Parameters() {
		for i := 0; i <= 100; i++ {
			n := float64(i) / 100
			v := p.Range.Denormalize(n)
			if v < p.Range.Min || v > p.Range.Max {
				t.Fatalf("%s: Denormalize(%v) = %v out of range", p.Name, n, v)
			}
			if again := p.Range.Denormalize(p.Range.Normalize(v)); math.Abs(again-v) > 1e-9 {
				t.Fatalf("%s: round trip %v -> %v", p.Name, v, again)
			}
		}
	}
}

func TestParameters_Layout(t *testing.T) {
	params := Parameters()
	if len(params) != 7 {
		t.Fatalf("len = %d, want 7", len(params))
	}
	for i, p := range params {
		if p.ID != ParamID(i) {
			t.Fatalf("params[%d].ID = %v", i, p.ID)
		}
		if p.Default < p.Range.Min || p.Default > p.Range.Max {
			t.Fatalf("%s default %v outside range", p.Name, p.Default)
		}
	}
	if !Param(ParamLowCutSlope).IsChoice() || len(Param(ParamHighCutSlope).Choices) != 4 {
		t.Fatal("slopes must be four-way choices")
	}
	if Param(ParamPeakGain).IsChoice() {
		t.Fatal("gain is continuous")
	}
}

func TestParamByName(t *testing.T) {
	for _, name := range []string{"peak_gain", "Peak Gain", "PEAK GAIN"} {
		id, err := ParamByName(name)
		if err != nil || id != ParamPeakGain {
			t.Fatalf("ParamByName(%q) = %v, %v", name, id, err)
		}
	}
	for _, name := range []string{"peak_q", "Peak Q", "peak q"} {
		if id, err := ParamByName(name); err != nil || id != ParamPeakQ {
			t.Fatalf("ParamByName(%q) = %v, %v", name, id, err)
		}
	}
	if _, err := ParamByName("drive"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("err = %v, want ErrUnknownParameter", err)
	}
	if ParamID(42).Valid() || ParamID(42).String() != "ParamID(42)" {
		t.Fatal("unknown id must be invalid")
	}
}
