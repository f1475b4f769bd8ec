package indicator

import (
	"sort"
	"time"

	talib "github.com/markcheno/go-talib"
	"github.com/somwatee/HATS-v4/shared"
)

const (
	emaFastPeriod = 50
	emaSlowPeriod = 200
	rsiPeriod     = 14
	adxPeriod     = 14
)

// Stamp selects the bucket boundary higher timeframe points are stamped at.
type Stamp int

const (
	// StampOpen stamps points at their bucket's open time.
	StampOpen Stamp = iota
	// StampClose stamps points at their bucket's close time, so a base bar
	// only sees buckets that have closed.
	StampClose
)

// HTFPoint represents the higher timeframe indicator values known at a point in time.
type HTFPoint struct {
	// Date is the open or close time of the bucket the values were computed on.
	Date   time.Time
	EMA50  shared.Float
	EMA200 shared.Float
	RSI14  shared.Float
	ADX14  shared.Float
}

// lookbackSeries runs the provided computation when there are more values than
// the lookback and marks the lookback period as null.
func lookbackSeries(n int, lookback int, compute func() []float64) []shared.Float {
	set := make([]shared.Float, n)
	if n <= lookback {
		return set
	}

	values := compute()
	for idx := lookback; idx < n; idx++ {
		set[idx] = shared.Some(values[idx])
	}

	return set
}

// HigherTimeframe computes the trend and momentum indicators for the provided
// buckets, stamping each point at the bucket boundary selected.
func HigherTimeframe(buckets []Bucket, stamp Stamp) []HTFPoint {
	n := len(buckets)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for idx := range buckets {
		highs[idx] = buckets[idx].High
		lows[idx] = buckets[idx].Low
		closes[idx] = buckets[idx].Close
	}

	emaFast := lookbackSeries(n, emaFastPeriod-1, func() []float64 {
		return talib.Ema(closes, emaFastPeriod)
	})
	emaSlow := lookbackSeries(n, emaSlowPeriod-1, func() []float64 {
		return talib.Ema(closes, emaSlowPeriod)
	})
	rsi := lookbackSeries(n, rsiPeriod, func() []float64 {
		return talib.Rsi(closes, rsiPeriod)
	})
	adx := lookbackSeries(n, 2*adxPeriod-1, func() []float64 {
		return talib.Adx(highs, lows, closes, adxPeriod)
	})

	points := make([]HTFPoint, n)
	for idx := range buckets {
		date := buckets[idx].Date
		if stamp == StampClose {
			date = buckets[idx].End
		}

		points[idx] = HTFPoint{
			Date:   date,
			EMA50:  emaFast[idx],
			EMA200: emaSlow[idx],
			RSI14:  rsi[idx],
			ADX14:  adx[idx],
		}
	}

	return points
}

// AsOfIndex answers latest known value queries over time ordered points.
type AsOfIndex struct {
	points []HTFPoint
}

// NewAsOfIndex initializes an as-of index over the provided time ordered points.
func NewAsOfIndex(points []HTFPoint) *AsOfIndex {
	return &AsOfIndex{points: points}
}

// At returns the latest point with a timestamp not after the provided time.
func (a *AsOfIndex) At(t time.Time) (HTFPoint, bool) {
	idx := sort.Search(len(a.points), func(i int) bool {
		return a.points[i].Date.After(t)
	})
	if idx == 0 {
		return HTFPoint{}, false
	}

	return a.points[idx-1], true
}
