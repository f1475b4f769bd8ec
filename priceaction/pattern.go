package priceaction

import "github.com/somwatee/HATS-v4/shared"

const (
	// minWickToBodyRatio is the minimum wick size relative to the body for pin bars.
	minWickToBodyRatio = 2
	// maxBodyPercent is the maximum body size relative to the range for pin bars.
	maxBodyPercent = 0.3
)

// isBullishEngulfing returns whether prev engulfs a bearish prev2 bullishly.
func isBullishEngulfing(prev2 *shared.Bar, prev *shared.Bar) bool {
	return prev2.FetchSentiment() == shared.Bearish &&
		prev.FetchSentiment() == shared.Bullish &&
		prev.Open < prev2.Close &&
		prev.Close > prev2.Open
}

// isBearishEngulfing returns whether prev engulfs a bullish prev2 bearishly.
func isBearishEngulfing(prev2 *shared.Bar, prev *shared.Bar) bool {
	return prev2.FetchSentiment() == shared.Bullish &&
		prev.FetchSentiment() == shared.Bearish &&
		prev.Open > prev2.Close &&
		prev.Close < prev2.Open
}

// isHammer returns whether the bar has a long lower wick and a small body.
func isHammer(bar *shared.Bar) bool {
	body := bar.Body()
	return bar.LowerWick() >= minWickToBodyRatio*body && body <= maxBodyPercent*bar.Range()
}

// isShootingStar returns whether the bar has a long upper wick and a small body.
func isShootingStar(bar *shared.Bar) bool {
	body := bar.Body()
	return bar.UpperWick() >= minWickToBodyRatio*body && body <= maxBodyPercent*bar.Range()
}

// ConfirmPattern checks the two bars preceding a gap anchor for a confirming
// candlestick pattern in the provided direction.
func ConfirmPattern(prev2 *shared.Bar, prev *shared.Bar, bullish bool) bool {
	if bullish {
		return isBullishEngulfing(prev2, prev) || isHammer(prev)
	}

	return isBearishEngulfing(prev2, prev) || isShootingStar(prev)
}
