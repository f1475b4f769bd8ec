package indicator

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func risingBuckets(n int) []Bucket {
	buckets := make([]Bucket, n)
	for idx := range n {
		open := start.Add(time.Duration(idx) * 15 * time.Minute)
		price := float64(100 + idx)
		buckets[idx] = Bucket{
			Date:  open,
			End:   open.Add(15 * time.Minute),
			High:  price + 1,
			Low:   price - 1,
			Close: price,
		}
	}

	return buckets
}

func TestHigherTimeframe(t *testing.T) {
	buckets := risingBuckets(210)
	points := HigherTimeframe(buckets, StampOpen)
	assert.Equal(t, len(points), len(buckets))

	// Ensure points are stamped at the selected bucket boundary.
	assert.Equal(t, points[0].Date, buckets[0].Date)
	closed := HigherTimeframe(buckets, StampClose)
	assert.Equal(t, closed[0].Date, buckets[0].End)
	assert.Equal(t, closed[209].RSI14, points[209].RSI14)

	// Ensure values are null until their lookback is satisfied.
	assert.False(t, points[48].EMA50.Valid)
	assert.True(t, points[49].EMA50.Valid)
	assert.False(t, points[198].EMA200.Valid)
	assert.True(t, points[199].EMA200.Valid)
	assert.False(t, points[13].RSI14.Valid)
	assert.True(t, points[14].RSI14.Valid)
	assert.False(t, points[26].ADX14.Valid)
	assert.True(t, points[27].ADX14.Valid)

	// Ensure the first ema value is the simple average of its period.
	assert.Equal(t, points[49].EMA50.Value, 124.5)

	// Ensure a steady uptrend reads as trending with strong momentum.
	last := points[len(points)-1]
	assert.GreaterThan(t, last.EMA50.Value, last.EMA200.Value)
	assert.Equal(t, last.RSI14.Value, 100.0)
	assert.GreaterThan(t, last.ADX14.Value, 18.0)
}

func TestHigherTimeframeShortSeries(t *testing.T) {
	// Ensure short series produce null values instead of failing.
	points := HigherTimeframe(risingBuckets(10), StampOpen)
	assert.Equal(t, len(points), 10)
	for idx := range points {
		assert.False(t, points[idx].EMA50.Valid)
		assert.False(t, points[idx].EMA200.Valid)
		assert.False(t, points[idx].RSI14.Valid)
		assert.False(t, points[idx].ADX14.Valid)
	}

	assert.Equal(t, len(HigherTimeframe(nil, StampOpen)), 0)
}

func TestAsOfIndex(t *testing.T) {
	tests := []struct {
		name  string
		stamp Stamp
		at    time.Time
		found bool
		want  int
	}{
		{"before first open", StampOpen, start.Add(-time.Minute), false, 0},
		{"at first open", StampOpen, start, true, 0},
		{"within first bucket", StampOpen, start.Add(14 * time.Minute), true, 0},
		{"at second open", StampOpen, start.Add(15 * time.Minute), true, 1},
		{"after last open", StampOpen, start.Add(3 * time.Hour), true, 2},
		{"before first close", StampClose, start.Add(14 * time.Minute), false, 0},
		{"at first close", StampClose, start.Add(15 * time.Minute), true, 0},
		{"between closes", StampClose, start.Add(29 * time.Minute), true, 0},
		{"at last close", StampClose, start.Add(45 * time.Minute), true, 2},
	}

	for _, test := range tests {
		points := HigherTimeframe(risingBuckets(3), test.stamp)
		index := NewAsOfIndex(points)

		point, found := index.At(test.at)
		if found != test.found {
			t.Errorf("%s: expected found %v, got %v", test.name, test.found, found)
		}
		if !found {
			continue
		}
		if !point.Date.Equal(points[test.want].Date) {
			t.Errorf("%s: expected %v, got %v", test.name, points[test.want].Date, point.Date)
		}
	}
}
