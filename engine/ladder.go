package engine

import "github.com/somwatee/HATS-v4/shared"

const (
	// stopATRMultiplier is the atr fraction placed beyond the gap for the stop loss.
	stopATRMultiplier = 0.5
	// swingExtension is the swing range extension used for the first target.
	swingExtension = 1.272
	// entryATRMultiplier is the atr multiple added to the entry for the second target.
	entryATRMultiplier = 2.0
	// vwapATRMultiplier is the atr fraction added to the vwap for the third target.
	vwapATRMultiplier = 0.5
)

// Ladder represents the stop loss and staged targets of a trade.
type Ladder struct {
	StopLoss float64
	Target1  float64
	Target2  float64
	Target3  float64
}

// ComputeLadder computes the exit ladder for the provided label. A NoTrade
// label yields an all zero ladder.
func ComputeLadder(label shared.Label, entry float64, swingHigh float64, swingLow float64,
	gapBottom float64, gapTop float64, atr float64, vwap float64) Ladder {
	swingRange := swingHigh - swingLow

	switch label {
	case shared.Buy:
		return Ladder{
			StopLoss: gapBottom - stopATRMultiplier*atr,
			Target1:  swingLow + swingExtension*swingRange,
			Target2:  entry + entryATRMultiplier*atr,
			Target3:  vwap + vwapATRMultiplier*atr,
		}
	case shared.Sell:
		return Ladder{
			StopLoss: gapTop + stopATRMultiplier*atr,
			Target1:  swingHigh - swingExtension*swingRange,
			Target2:  entry - entryATRMultiplier*atr,
			Target3:  vwap - vwapATRMultiplier*atr,
		}
	default:
		return Ladder{}
	}
}
