package eq

import (
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// ChainCoefficients is the designed filter set for one channel.
type ChainCoefficients struct {
	LowCut  biquad.CascadeCoefficients
	Peak    biquad.Coefficients
	HighCut biquad.CascadeCoefficients
}

// DesignChain derives the coefficients for settings at sampleRate. It is pure
// and allocation-free; equal inputs give bit-identical results.
func DesignChain(settings ChainSettings, sampleRate float64) ChainCoefficients {
	return ChainCoefficients{
		LowCut: design.HighpassCascade(settings.LowCutFreq, sampleRate, settings.LowCutSlope.Stages()),
		Peak: design.PeakFilter(settings.PeakFreq, sampleRate, settings.PeakQ,
			core.DBToGain(settings.PeakGainDB)),
		HighCut: design.LowpassCascade(settings.HighCutFreq, sampleRate, settings.HighCutSlope.Stages()),
	}
}

// MagnitudeSquared returns |H(f)|^2 of the whole chain.
func (cc ChainCoefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	return cc.LowCut.MagnitudeSquared(freqHz, sampleRate) *
		cc.Peak.MagnitudeSquared(freqHz, sampleRate) *
		cc.HighCut.MagnitudeSquared(freqHz, sampleRate)
}

// MagnitudeDB returns the chain magnitude in decibels.
func (cc ChainCoefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.PowerToDB(cc.MagnitudeSquared(freqHz, sampleRate))
}

// IsStable reports whether every active stage is stable.
func (cc ChainCoefficients) IsStable() bool {
	for _, c := range cc.LowCut.Active() {
		if !c.IsStable() {
			return false
		}
	}
	for _, c := range cc.HighCut.Active() {
		if !c.IsStable() {
			return false
		}
	}
	return cc.Peak.IsStable()
}

// ChannelChain filters one channel: low-cut, then peak, then high-cut.
// The zero value passes audio through unchanged until Apply is called.
type ChannelChain struct {
	lowCut  biquad.Cascade
	peak    biquad.Cascade
	highCut biquad.Cascade
}

// Apply installs cc. History of stages that stay active is preserved.
func (c *ChannelChain) Apply(cc ChainCoefficients) {
	c.lowCut.Configure(cc.LowCut)

	var peak biquad.CascadeCoefficients
	peak.Stages[0] = cc.Peak
	peak.N = 1
	c.peak.Configure(peak)

	c.highCut.Configure(cc.HighCut)
}

// ProcessSample filters one sample through the three filters.
func (c *ChannelChain) ProcessSample(x float64) float64 {
	x = c.lowCut.ProcessSample(x)
	x = c.peak.ProcessSample(x)
	return c.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in place stage by stage. The result matches
// ProcessSample over the same input up to floating-point contraction.
func (c *ChannelChain) ProcessBlock(buf []float64) {
	c.lowCut.ProcessBlock(buf)
	c.peak.ProcessBlock(buf)
	c.highCut.ProcessBlock(buf)
}

// Reset clears all filter history.
func (c *ChannelChain) Reset() {
	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// FlushDenormals zeroes negligible history values.
func (c *ChannelChain) FlushDenormals() {
	c.lowCut.FlushDenormals()
	c.peak.FlushDenormals()
	c.highCut.FlushDenormals()
}

// LowCut exposes the low-cut cascade.
func (c *ChannelChain) LowCut() *biquad.Cascade { return &c.lowCut }

// Peak exposes the peak stage.
func (c *ChannelChain) Peak() *biquad.Section { return c.peak.Stage(0) }

// HighCut exposes the high-cut cascade.
func (c *ChannelChain) HighCut() *biquad.Cascade { return &c.highCut }
