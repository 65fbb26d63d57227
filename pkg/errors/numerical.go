package errors

import (
	"math"
)

// CheckNumericalStability fails if any of values is NaN or ±Inf. round is the
// boosting round the values belong to, or 0 outside a run.
func CheckNumericalStability(operation string, values []float64, round int) error {
	for _, v := range values {
		if !finite(v) {
			return NewNumericalInstabilityError(operation, values, round)
		}
	}
	return nil
}

// CheckScalar is CheckNumericalStability for a single bound or LP value.
func CheckScalar(operation string, value float64, round int) error {
	if !finite(value) {
		return NewNumericalInstabilityError(operation, []float64{value}, round)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClipValue clamps value into [lo, hi].
func ClipValue(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}
