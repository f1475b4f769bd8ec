package priceaction

import (
	"time"

	"github.com/somwatee/HATS-v4/shared"
)

// Structure represents the market structure classification of a bar.
type Structure struct {
	// Shift is whether the bar's close broke the previous bar's range.
	Shift     bool
	Bullish   bool
	SwingHigh float64
	SwingLow  float64
	Date      time.Time
}

// DetectShift classifies the current bar against the bar before it. The swing
// bounds recorded are the triggering bar's own high and low.
func DetectShift(prev *shared.Bar, current *shared.Bar) Structure {
	switch {
	case current.Close > prev.High:
		return Structure{
			Shift:     true,
			Bullish:   true,
			SwingHigh: current.High,
			SwingLow:  current.Low,
			Date:      current.Date,
		}
	case current.Close < prev.Low:
		return Structure{
			Shift:     true,
			Bullish:   false,
			SwingHigh: current.High,
			SwingLow:  current.Low,
			Date:      current.Date,
		}
	default:
		return Structure{}
	}
}

// DetectStructure classifies every bar of the provided series. The first bar
// has no predecessor and is never a shift.
func DetectStructure(bars []shared.Bar) []Structure {
	set := make([]Structure, len(bars))
	for idx := 1; idx < len(bars); idx++ {
		set[idx] = DetectShift(&bars[idx-1], &bars[idx])
	}

	return set
}
