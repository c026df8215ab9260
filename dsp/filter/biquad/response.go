package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Response computes H(e^jw) at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 in closed form without complex exponentials.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// Magnitude returns |H(f)|.
func (c Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns |H(f)| in decibels.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.PowerToDB(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians, in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// MagnitudeSquared returns the product of the active stage magnitudes squared.
func (cc CascadeCoefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	m := 1.0
	for _, c := range cc.Active() {
		m *= c.MagnitudeSquared(freqHz, sampleRate)
	}
	return m
}

// Response returns the product of the active stage responses.
func (cc CascadeCoefficients) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, c := range cc.Active() {
		h *= c.Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns the cascade magnitude in decibels.
func (cc CascadeCoefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.PowerToDB(cc.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns the magnitude of the installed active stages in decibels.
func (c *Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return c.Coefficients().MagnitudeDB(freqHz, sampleRate)
}

// ImpulseResponse fills dst with the impulse response of the active stages.
// The cascade history is saved and restored.
func (c *Cascade) ImpulseResponse(dst []float64) {
	var saved [MaxStages][2]float64
	for i := range c.stages {
		saved[i] = c.stages[i].State()
		c.stages[i].Reset()
	}

	for i := range dst {
		x := 0.0
		if i == 0 {
			x = 1
		}
		dst[i] = c.ProcessSample(x)
	}

	for i := range c.stages {
		c.stages[i].SetState(saved[i])
	}
}
