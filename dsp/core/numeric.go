package core

import "math"

const defaultEpsilon = 1e-12

// DenormalThreshold is the magnitude below which filter state is treated as zero.
const DenormalThreshold = 1e-30

// MinusInfinityDB is the floor used by the gain conversions. Anything at or
// below it maps to silence.
const MinusInfinityDB = -100.0

// Clamp limits value to the inclusive range [lo, hi]. NaN maps to lo.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if math.IsNaN(value) || value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(value, lo), hi)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual reports whether a and b are equal within eps, absolute or relative.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}

// FlushDenormal returns 0 for values whose magnitude is below DenormalThreshold.
func FlushDenormal(x float64) float64 {
	if x > -DenormalThreshold && x < DenormalThreshold {
		return 0
	}

	return x
}

// GainToDB converts a linear amplitude to decibels. Gains at or below the
// MinusInfinityDB floor return MinusInfinityDB.
func GainToDB(gain float64) float64 {
	if !(gain > 0) {
		return MinusInfinityDB
	}

	return max(20*math.Log10(gain), MinusInfinityDB)
}

// PowerToDB converts a squared magnitude to decibels with the same floor as GainToDB.
func PowerToDB(power float64) float64 {
	if !(power > 0) {
		return MinusInfinityDB
	}

	return max(10*math.Log10(power), MinusInfinityDB)
}
