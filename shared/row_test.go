package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestFeatureRowVector(t *testing.T) {
	row := FeatureRow{
		Bar: Bar{
			Date:   time.Date(2025, 2, 4, 15, 0, 0, 0, time.UTC),
			Open:   1,
			High:   2,
			Low:    3,
			Close:  4,
			Volume: 5,
		},
		IsBullMSS: true,
		SwingLow:  Some(7),
		SwingHigh: Some(8),
		GapBottom: 9,
		GapTop:    10,
		Fib61:     Some(11),
		Fib50:     Some(12),
		Fib38:     Some(13),
		ATR:       Some(14),
		// VWAP is intentionally null.
		HTFEMA50:    Some(16),
		HTFEMA200:   Some(17),
		HTFRSI14:    Some(18),
		HTFADX14:    Some(19),
		PatternFlag: true,
	}

	// Ensure the vector has the expected length and order, with nulls as zero.
	vec := row.Vector()
	assert.Equal(t, len(vec), FeatureCount)
	assert.Equal(t, len(vec), len(FeatureNames))

	want := []float64{1, 2, 3, 4, 5, 1, 7, 8, 9, 10, 11, 12, 13, 14, 0, 16, 17, 18, 19, 1}
	for idx := range want {
		if vec[idx] != want[idx] {
			t.Errorf("%s: expected %v, got %v", FeatureNames[idx], want[idx], vec[idx])
		}
	}

	// Ensure mss and gap presence is reported.
	assert.False(t, row.HasMSS())
	assert.True(t, row.HasGap())

	row.MSSTime = row.Date
	assert.True(t, row.HasMSS())
}

func TestFloatValid(t *testing.T) {
	var null Float
	assert.False(t, null.Valid)
	assert.Equal(t, null.OrZero(), float64(0))

	val := Some(2.5)
	assert.True(t, val.Valid)
	assert.Equal(t, val.OrZero(), float64(2.5))
}
