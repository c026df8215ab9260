package biquad

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegenerate is returned when a transfer function cannot be normalized:
// a0 is zero or not finite, or normalization produced a non-finite value.
var ErrDegenerate = errors.New("biquad: degenerate coefficients")

const minLeadingCoefficient = 1e-12

// Coefficients holds the transfer function of one second-order section with
// a0 normalized to 1.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns pass-through coefficients.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Normalize divides all raw coefficients by a0.
func Normalize(b0, b1, b2, a0, a1, a2 float64) (Coefficients, error) {
	if math.IsNaN(a0) || math.IsInf(a0, 0) || math.Abs(a0) < minLeadingCoefficient {
		return Coefficients{}, ErrDegenerate
	}

	inv := 1 / a0
	c := Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
	if !c.IsFinite() {
		return Coefficients{}, ErrDegenerate
	}

	return c, nil
}

// IsIdentity reports whether c passes the signal through unchanged.
func (c Coefficients) IsIdentity() bool {
	return c == Identity()
}

// IsFinite reports whether every coefficient is finite.
func (c Coefficients) IsFinite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsStable reports whether both poles lie strictly inside the unit circle.
// It uses the stability triangle of the denominator 1 + A1 z^-1 + A2 z^-2.
func (c Coefficients) IsStable() bool {
	if !c.IsFinite() {
		return false
	}
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Poles returns the z-plane roots of 1 + A1 z^-1 + A2 z^-2.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane roots of B0 + B1 z^-1 + B2 z^-2.
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// MaxPoleRadius returns the largest pole magnitude.
func (c Coefficients) MaxPoleRadius() float64 {
	p := c.Poles()
	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sqrtDiscriminant := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
