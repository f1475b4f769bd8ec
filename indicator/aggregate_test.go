package indicator

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/somwatee/HATS-v4/shared"
)

func TestAggregate(t *testing.T) {
	bars := make([]shared.Bar, 0, 40)
	for idx := range 40 {
		price := float64(100 + idx)
		bars = append(bars, newBar(idx, price+1, price-1, price, 1))
	}

	// Ensure complete buckets are formed and the forming bucket is dropped.
	buckets := Aggregate(bars, 15*time.Minute, time.Minute)
	assert.Equal(t, len(buckets), 2)

	assert.Equal(t, buckets[0].Date, start)
	assert.Equal(t, buckets[0].End, start.Add(15*time.Minute))
	assert.Equal(t, buckets[0].High, 115.0)
	assert.Equal(t, buckets[0].Low, 99.0)
	assert.Equal(t, buckets[0].Close, 114.0)

	assert.Equal(t, buckets[1].Date, start.Add(15*time.Minute))
	assert.Equal(t, buckets[1].High, 130.0)
	assert.Equal(t, buckets[1].Low, 114.0)
	assert.Equal(t, buckets[1].Close, 129.0)

	// Ensure a bucket closed by the last bar is kept.
	buckets = Aggregate(bars[:30], 15*time.Minute, time.Minute)
	assert.Equal(t, len(buckets), 2)

	// Ensure gaps in the base series do not merge buckets.
	gapped := []shared.Bar{bars[0], bars[1], bars[31], bars[32]}
	buckets = Aggregate(gapped, 15*time.Minute, time.Minute)
	assert.Equal(t, len(buckets), 1)
	assert.Equal(t, buckets[0].Close, 101.0)

	// Ensure an empty series has no buckets.
	assert.Equal(t, len(Aggregate(nil, 15*time.Minute, time.Minute)), 0)
}
