// Package preset stores equalizer settings as YAML files and hot-reloads them
// into a running parameter store.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// ErrInvalidPreset wraps semantic preset errors.
var ErrInvalidPreset = errors.New("preset: invalid")

// CutBand is a low-cut or high-cut filter. Slope is in dB/octave.
type CutBand struct {
	Freq  float64 `yaml:"freq"`
	Slope int     `yaml:"slope"`
}

// PeakBand is the peaking filter.
type PeakBand struct {
	Freq   float64 `yaml:"freq"`
	GainDB float64 `yaml:"gain_db"`
	Q      float64 `yaml:"q"`
}

// Preset is the on-disk form of a ChainSettings.
type Preset struct {
	Name    string   `yaml:"name,omitempty"`
	LowCut  CutBand  `yaml:"low_cut"`
	Peak    PeakBand `yaml:"peak"`
	HighCut CutBand  `yaml:"high_cut"`
}

// Default returns the preset matching eq.DefaultChainSettings.
func Default() Preset {
	p := FromSettings(eq.DefaultChainSettings())
	p.Name = "default"
	return p
}

// FromSettings converts cs to a preset.
func FromSettings(cs eq.ChainSettings) Preset {
	return Preset{
		LowCut:  CutBand{Freq: cs.LowCutFreq, Slope: cs.LowCutSlope.DBPerOctave()},
		Peak:    PeakBand{Freq: cs.PeakFreq, GainDB: cs.PeakGainDB, Q: cs.PeakQ},
		HighCut: CutBand{Freq: cs.HighCutFreq, Slope: cs.HighCutSlope.DBPerOctave()},
	}
}

// Settings validates the slopes and returns the sanitized ChainSettings.
func (p Preset) Settings() (eq.ChainSettings, error) {
	lo, err := eq.ParseSlope(fmt.Sprint(p.LowCut.Slope))
	if err != nil {
		return eq.ChainSettings{}, fmt.Errorf("%w: low_cut.slope: %w", ErrInvalidPreset, err)
	}

	hi, err := eq.ParseSlope(fmt.Sprint(p.HighCut.Slope))
	if err != nil {
		return eq.ChainSettings{}, fmt.Errorf("%w: high_cut.slope: %w", ErrInvalidPreset, err)
	}

	cs := eq.ChainSettings{
		LowCutFreq:   p.LowCut.Freq,
		LowCutSlope:  lo,
		HighCutFreq:  p.HighCut.Freq,
		HighCutSlope: hi,
		PeakFreq:     p.Peak.Freq,
		PeakGainDB:   p.Peak.GainDB,
		PeakQ:        p.Peak.Q,
	}

	return cs.Sanitized(), nil
}

// ApplyTo writes the preset into store.
func (p Preset) ApplyTo(store *eq.ParameterStore) error {
	cs, err := p.Settings()
	if err != nil {
		return err
	}
	store.SetSettings(cs)
	return nil
}

// Parse decodes a preset. Fields missing from data keep their defaults;
// unknown fields are rejected.
func Parse(data []byte) (Preset, error) {
	p := Default()
	p.Name = ""

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("preset: decode: %w", err)
	}

	if _, err := p.Settings(); err != nil {
		return Preset{}, err
	}

	return p, nil
}

// Load reads and parses the preset at path.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: read: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Save writes p to path as YAML.
func (p Preset) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: write: %w", err)
	}

	return nil
}
