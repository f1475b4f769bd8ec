package priceaction

import (
	"time"

	"github.com/somwatee/HATS-v4/shared"
)

const (
	// DefaultGapLookback is the default number of bars scanned backwards for
	// a price imbalance.
	DefaultGapLookback = 500
)

// Gap represents a price imbalance left by three consecutive same sentiment bars.
type Gap struct {
	Bottom    float64
	Top       float64
	Sentiment shared.Sentiment
	// Anchor is the index of the first bar of the run, -1 if no gap was found.
	Anchor int
	Date   time.Time
}

// Found returns whether the gap was located.
func (g *Gap) Found() bool {
	return g.Anchor >= 0
}

// noGap is the default gap value when none is located.
var noGap = Gap{Anchor: -1}

// sameSentiment returns whether the three bars ending at idx share the provided sentiment.
func sameSentiment(bars []shared.Bar, idx int, sentiment shared.Sentiment) bool {
	return bars[idx-2].FetchSentiment() == sentiment &&
		bars[idx-1].FetchSentiment() == sentiment &&
		bars[idx].FetchSentiment() == sentiment
}

// LocateGap scans backwards from the bar before idx for the nearest three bar
// run forming a valid imbalance. At most lookback run endings are checked,
// a non-positive lookback uses the default.
func LocateGap(bars []shared.Bar, idx int, lookback int) Gap {
	if lookback <= 0 {
		lookback = DefaultGapLookback
	}

	floor := max(2, idx-lookback)
	for j := idx - 1; j >= floor; j-- {
		if sameSentiment(bars, j, shared.Bullish) {
			bottom := bars[j-1].Low
			top := bars[j].High
			if bottom > top {
				return Gap{
					Bottom:    top,
					Top:       bottom,
					Sentiment: shared.Bullish,
					Anchor:    j - 2,
					Date:      bars[j-2].Date,
				}
			}
		}

		if sameSentiment(bars, j, shared.Bearish) {
			bottom := bars[j].Low
			top := bars[j-1].High
			if top > bottom {
				return Gap{
					Bottom:    bottom,
					Top:       top,
					Sentiment: shared.Bearish,
					Anchor:    j - 2,
					Date:      bars[j-2].Date,
				}
			}
		}
	}

	return noGap
}
