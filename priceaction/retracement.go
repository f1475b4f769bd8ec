package priceaction

const (
	fibDeep    = 0.618
	fibHalf    = 0.5
	fibShallow = 0.382
)

// Retracement represents fibonacci retracement levels of a swing.
type Retracement struct {
	Fib61 float64
	Fib50 float64
	Fib38 float64
}

// NewRetracement calculates the retracement levels of the provided swing. Bullish
// swings retrace down from the high, bearish swings retrace up from the low.
func NewRetracement(swingHigh float64, swingLow float64, bullish bool) Retracement {
	diff := swingHigh - swingLow
	if bullish {
		return Retracement{
			Fib61: swingHigh - fibDeep*diff,
			Fib50: swingHigh - fibHalf*diff,
			Fib38: swingHigh - fibShallow*diff,
		}
	}

	return Retracement{
		Fib61: swingLow + fibDeep*diff,
		Fib50: swingLow + fibHalf*diff,
		Fib38: swingLow + fibShallow*diff,
	}
}
