//go:build !fastmath

package core

import "math"

// DBToGain converts decibels to a linear amplitude. Values at or below
// MinusInfinityDB return 0.
func DBToGain(db float64) float64 {
	if db <= MinusInfinityDB || math.IsNaN(db) {
		return 0
	}

	return math.Pow(10, db/20)
}
