package shared

import (
	"math"
	"time"
)

// Sentiment represents the bar sentiment.
type Sentiment int

const (
	Neutral Sentiment = iota
	Bullish
	Bearish
)

// String stringifies the provided sentiment.
func (s Sentiment) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "unknown"
	}
}

// Bar represents a unit OHLCV price bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// FetchSentiment returns the provided bar's sentiment.
func (b *Bar) FetchSentiment() Sentiment {
	sentiment := b.Close - b.Open
	switch {
	case sentiment < 0:
		return Bearish
	case sentiment > 0:
		return Bullish
	default:
		return Neutral
	}
}

// Body returns the absolute size of the bar's body.
func (b *Bar) Body() float64 {
	return math.Abs(b.Close - b.Open)
}

// Range returns the high to low range of the bar.
func (b *Bar) Range() float64 {
	return b.High - b.Low
}

// UpperWick returns the distance between the high and the top of the body.
func (b *Bar) UpperWick() float64 {
	return b.High - math.Max(b.Open, b.Close)
}

// LowerWick returns the distance between the bottom of the body and the low.
func (b *Bar) LowerWick() float64 {
	return math.Min(b.Open, b.Close) - b.Low
}

// TypicalPrice returns the (high + low + close) / 3 average of the bar.
func (b *Bar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}
