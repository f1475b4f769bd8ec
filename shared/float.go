package shared

import "math"

// Float is a nullable float. The zero value is null.
type Float struct {
	Value float64
	Valid bool
}

// Some returns a valid float holding the provided value.
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// OrZero returns the value or zero if null.
func (f Float) OrZero() float64 {
	if !f.Valid {
		return 0
	}

	return f.Value
}

// OrNaN returns the value or NaN if null. Price levels derived from a NaN
// never compare true, so they can never be touched.
func (f Float) OrNaN() float64 {
	if !f.Valid {
		return math.NaN()
	}

	return f.Value
}
