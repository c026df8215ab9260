//go:build fastmath

package core

import (
	"math"

	approx "github.com/meko-christian/algo-approx"
)

const ln10Over20 = math.Ln10 / 20

// DBToGain converts decibels to a linear amplitude using a fast exp
// approximation. Values at or below MinusInfinityDB return 0.
func DBToGain(db float64) float64 {
	if db <= MinusInfinityDB || math.IsNaN(db) {
		return 0
	}

	return approx.FastExp(db * ln10Over20)
}
