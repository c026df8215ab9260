package eq

import (
	"errors"
	"testing"
)

func TestSlope_StagesAndDB(t *testing.T) {
	tests := []struct {
		slope  Slope
		stages int
		db     int
		index  int
	}{
		{Slope12, 1, 12, 0},
		{Slope24, 2, 24, 1},
		{Slope36, 3, 36, 2},
		{Slope48, 4, 48, 3},
		{Slope(0), 1, 12, 0},
		{Slope(7), 4, 48, 3},
	}
	for _, tt := range tests {
		if tt.slope.Stages() != tt.stages || tt.slope.DBPerOctave() != tt.db || tt.slope.Index() != tt.index {
			t.Fatalf("%d: stages=%d db=%d index=%d", int(tt.slope), tt.slope.Stages(), tt.slope.DBPerOctave(), tt.slope.Index())
		}
	}
}

func TestSlopeFromIndex(t *testing.T) {
	for i := -1; i <= 4; i++ {
		s := SlopeFromIndex(i)
		if s < Slope12 || s > Slope48 {
			t.Fatalf("SlopeFromIndex(%d) = %d out of range", i, s)
		}
	}
	if SlopeFromIndex(2) != Slope36 {
		t.Fatal("index 2 must map to 36 dB/Oct")
	}
}

func TestParseSlope(t *testing.T) {
	for text, want := range map[string]Slope{
		"12":        Slope12,
		"24 dB/Oct": Slope24,
		"36db":      Slope36,
		" 48 ":      Slope48,
	} {
		got, err := ParseSlope(text)
		if err != nil || got != want {
			t.Fatalf("ParseSlope(%q) = %v, %v; want %v", text, got, err, want)
		}
	}

	for _, text := range []string{"6", "60", "13", "steep"} {
		if _, err := ParseSlope(text); err == nil {
			t.Fatalf("ParseSlope(%q) succeeded", text)
		}
	}
	if _, err := ParseSlope("96"); !errors.Is(err, ErrInvalidSlope) {
		t.Fatalf("ParseSlope(96) err = %v, want ErrInvalidSlope", err)
	}
}

func TestSlope_String(t *testing.T) {
	if s := Slope24.String(); s != "24 dB/Oct" {
		t.Fatalf("String() = %q", s)
	}
}
