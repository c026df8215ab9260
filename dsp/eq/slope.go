package eq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Slope is the roll-off of a cut filter. Its value is the number of active
// second-order stages; each stage adds 12 dB/octave.
type Slope int

// Supported slopes.
const (
	Slope12 Slope = iota + 1
	Slope24
	Slope36
	Slope48
)

// Clamp returns s limited to Slope12..Slope48.
func (s Slope) Clamp() Slope {
	return min(max(s, Slope12), Slope48)
}

// Stages returns the number of active biquad stages.
func (s Slope) Stages() int {
	return int(s.Clamp())
}

// DBPerOctave returns the asymptotic roll-off.
func (s Slope) DBPerOctave() int {
	return 12 * s.Stages()
}

// Index returns the zero-based choice index (0..3).
func (s Slope) Index() int {
	return s.Stages() - 1
}

// SlopeFromIndex converts a choice index into a Slope. Out-of-range indices clamp.
func SlopeFromIndex(index int) Slope {
	return Slope(index + 1).Clamp()
}

func (s Slope) String() string {
	return fmt.Sprintf("%d dB/Oct", s.DBPerOctave())
}

// ParseSlope accepts "12", "24 dB/Oct", "48db" and similar spellings.
func ParseSlope(text string) (Slope, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimSuffix(t, "/oct")
	t = strings.TrimSpace(strings.TrimSuffix(t, "db"))

	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("eq: parse slope %q: %w", text, err)
	}

	if n%12 != 0 || n < 12 || n > 12*biquad.MaxStages {
		return 0, fmt.Errorf("eq: parse slope %q: %w", text, ErrInvalidSlope)
	}

	return Slope(n / 12), nil
}
