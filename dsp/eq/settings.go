package eq

import (
	"fmt"
)

// ChainSettings is one consistent view of every parameter, taken once per block.
type ChainSettings struct {
	LowCutFreq   float64
	LowCutSlope  Slope
	HighCutFreq  float64
	HighCutSlope Slope
	PeakFreq     float64
	PeakGainDB   float64
	PeakQ        float64
}

// DefaultChainSettings returns the parameter defaults: both cuts at the edges
// of the audible range and a flat peak band.
func DefaultChainSettings() ChainSettings {
	return ChainSettings{
		LowCutFreq:   parameters[ParamLowCutFreq].Default,
		LowCutSlope:  SlopeFromIndex(int(parameters[ParamLowCutSlope].Default)),
		HighCutFreq:  parameters[ParamHighCutFreq].Default,
		HighCutSlope: SlopeFromIndex(int(parameters[ParamHighCutSlope].Default)),
		PeakFreq:     parameters[ParamPeakFreq].Default,
		PeakGainDB:   parameters[ParamPeakGain].Default,
		PeakQ:        parameters[ParamPeakQ].Default,
	}
}

// Sanitized returns s with every field clamped and snapped to its parameter range.
func (s ChainSettings) Sanitized() ChainSettings {
	return ChainSettings{
		LowCutFreq:   parameters[ParamLowCutFreq].Range.Snap(s.LowCutFreq),
		LowCutSlope:  s.LowCutSlope.Clamp(),
		HighCutFreq:  parameters[ParamHighCutFreq].Range.Snap(s.HighCutFreq),
		HighCutSlope: s.HighCutSlope.Clamp(),
		PeakFreq:     parameters[ParamPeakFreq].Range.Snap(s.PeakFreq),
		PeakGainDB:   parameters[ParamPeakGain].Range.Snap(s.PeakGainDB),
		PeakQ:        parameters[ParamPeakQ].Range.Snap(s.PeakQ),
	}
}

// Value returns the store representation of one field. Slopes are choice indices.
func (s ChainSettings) Value(id ParamID) float64 {
	switch id {
	case ParamLowCutFreq:
		return s.LowCutFreq
	case ParamHighCutFreq:
		return s.HighCutFreq
	case ParamPeakFreq:
		return s.PeakFreq
	case ParamPeakGain:
		return s.PeakGainDB
	case ParamPeakQ:
		return s.PeakQ
	case ParamLowCutSlope:
		return float64(s.LowCutSlope.Index())
	case ParamHighCutSlope:
		return float64(s.HighCutSlope.Index())
	default:
		return 0
	}
}

// With returns a copy of s with one field replaced by its store representation.
func (s ChainSettings) With(id ParamID, v float64) ChainSettings {
	switch id {
	case ParamLowCutFreq:
		s.LowCutFreq = v
	case ParamHighCutFreq:
		s.HighCutFreq = v
	case ParamPeakFreq:
		s.PeakFreq = v
	case ParamPeakGain:
		s.PeakGainDB = v
	case ParamPeakQ:
		s.PeakQ = v
	case ParamLowCutSlope:
		s.LowCutSlope = SlopeFromIndex(int(v))
	case ParamHighCutSlope:
		s.HighCutSlope = SlopeFromIndex(int(v))
	}
	return s
}

func (s ChainSettings) String() string {
	return fmt.Sprintf("lowcut=%.0fHz/%s peak=%.0fHz %+.1fdB Q%.2f highcut=%.0fHz/%s",
		s.LowCutFreq, s.LowCutSlope, s.PeakFreq, s.PeakGainDB, s.PeakQ, s.HighCutFreq, s.HighCutSlope)
}

// SettingsSource supplies the settings applied to each audio block.
// Snapshot is called on the audio goroutine and must not block or allocate.
type SettingsSource interface {
	Snapshot() ChainSettings
}

// StaticSettings is a SettingsSource that never changes.
type StaticSettings ChainSettings

// Snapshot returns the fixed settings.
func (s StaticSettings) Snapshot() ChainSettings {
	return ChainSettings(s)
}
