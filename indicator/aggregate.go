package indicator

import (
	"time"

	"github.com/somwatee/HATS-v4/shared"
)

// Bucket represents a higher timeframe bar aggregated from base bars.
type Bucket struct {
	// Date is the bucket's open time.
	Date time.Time
	// End is the bucket's close time.
	End   time.Time
	High  float64
	Low   float64
	Close float64
}

// Aggregate groups the provided base bars into fixed width buckets. A trailing
// bucket that has not closed by the end of the last base bar is dropped.
func Aggregate(bars []shared.Bar, width time.Duration, resolution time.Duration) []Bucket {
	if len(bars) == 0 || width <= 0 {
		return nil
	}

	buckets := make([]Bucket, 0, len(bars)/int(max(1, width/max(resolution, 1)))+1)
	for idx := range bars {
		bar := &bars[idx]
		open := bar.Date.Truncate(width)

		last := len(buckets) - 1
		if last >= 0 && buckets[last].Date.Equal(open) {
			buckets[last].High = max(buckets[last].High, bar.High)
			buckets[last].Low = min(buckets[last].Low, bar.Low)
			buckets[last].Close = bar.Close
			continue
		}

		buckets = append(buckets, Bucket{
			Date:  open,
			End:   open.Add(width),
			High:  bar.High,
			Low:   bar.Low,
			Close: bar.Close,
		})
	}

	lastClose := bars[len(bars)-1].Date.Add(resolution)
	if buckets[len(buckets)-1].End.After(lastClose) {
		buckets = buckets[:len(buckets)-1]
	}

	return buckets
}
