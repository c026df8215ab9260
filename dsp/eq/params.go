package eq

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// ParamID identifies one user parameter.
type ParamID int

// The seven equalizer parameters.
const (
	ParamLowCutFreq ParamID = iota
	ParamHighCutFreq
	ParamPeakFreq
	ParamPeakGain
	ParamPeakQ
	ParamLowCutSlope
	ParamHighCutSlope

	paramCount
)

// snapScale trims the rounding residue of Min + k*Step so that snapped
// values compare equal to their decimal literals.
const snapScale = 1e9

// Range is a normalisable value range. Skew < 1 spends more of the
// normalized 0..1 span on the low end of the range.
type Range struct {
	Min, Max float64
	Step     float64
	Skew     float64
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return core.Clamp(v, r.Min, r.Max)
}

// Snap rounds v to the nearest step above Min and clamps the result.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Step > 0 {
		v = r.Min + r.Step*math.Floor((v-r.Min)/r.Step+0.5)
		v = math.Round(v*snapScale) / snapScale
	}
	return r.Clamp(v)
}

// Normalize maps v into 0..1 honoring Skew.
func (r Range) Normalize(v float64) float64 {
	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew > 0 && r.Skew != 1 {
		p = math.Pow(p, r.Skew)
	}
	return p
}

// Denormalize maps p in 0..1 back into the range and snaps it.
func (r Range) Denormalize(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if r.Skew > 0 && r.Skew != 1 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}
	return r.Snap(r.Min + (r.Max-r.Min)*p)
}

// Parameter describes one user parameter.
type Parameter struct {
	ID      ParamID
	Key     string // config and CLI key
	Name    string // display name
	Unit    string
	Range   Range
	Default float64
	Choices []string
}

// IsChoice reports whether the parameter selects from Choices.
func (p Parameter) IsChoice() bool {
	return len(p.Choices) > 0
}

var slopeChoices = []string{"12 dB/Oct", "24 dB/Oct", "36 dB/Oct", "48 dB/Oct"}

var frequencyRange = Range{Min: 20, Max: 20000, Step: 1, Skew: 0.25}

var parameters = [paramCount]Parameter{
	ParamLowCutFreq: {
		ID: ParamLowCutFreq, Key: "lowcut_freq", Name: "LowCut Freq", Unit: "Hz",
		Range: frequencyRange, Default: 20,
	},
	ParamHighCutFreq: {
		ID: ParamHighCutFreq, Key: "highcut_freq", Name: "HighCut Freq", Unit: "Hz",
		Range: frequencyRange, Default: 20000,
	},
	ParamPeakFreq: {
		ID: ParamPeakFreq, Key: "peak_freq", Name: "Peak Freq", Unit: "Hz",
		Range: frequencyRange, Default: 750,
	},
	ParamPeakGain: {
		ID: ParamPeakGain, Key: "peak_gain", Name: "Peak Gain", Unit: "dB",
		Range: Range{Min: -24, Max: 24, Step: 0.5, Skew: 1}, Default: 0,
	},
	ParamPeakQ: {
		ID: ParamPeakQ, Key: "peak_q", Name: "Peak Q",
		Range: Range{Min: 0.1, Max: 10, Step: 0.05, Skew: 1}, Default: 1,
	},
	ParamLowCutSlope: {
		ID: ParamLowCutSlope, Key: "lowcut_slope", Name: "LowCut Slope",
		Range: Range{Min: 0, Max: 3, Step: 1, Skew: 1}, Default: 0, Choices: slopeChoices,
	},
	ParamHighCutSlope: {
		ID: ParamHighCutSlope, Key: "highcut_slope", Name: "HighCut Slope",
		Range: Range{Min: 0, Max: 3, Step: 1, Skew: 1}, Default: 0, Choices: slopeChoices,
	},
}

// Parameters returns the parameter layout in ID order.
func Parameters() []Parameter {
	out := make([]Parameter, len(parameters))
	copy(out, parameters[:])
	return out
}

// Param returns the descriptor for id. It panics on an unknown id.
func Param(id ParamID) Parameter {
	return parameters[id]
}

// Valid reports whether id names a parameter.
func (id ParamID) Valid() bool {
	return id >= 0 && id < paramCount
}

func (id ParamID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
	return parameters[id].Name
}

// ParamByName resolves a key ("peak_gain") or display name ("Peak Gain"),
// ignoring case.
func ParamByName(name string) (ParamID, error) {
	n := strings.TrimSpace(name)
	for i := range parameters {
		if strings.EqualFold(parameters[i].Key, n) || strings.EqualFold(parameters[i].Name, n) {
			return parameters[i].ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}
