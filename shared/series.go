package shared

import "time"

// ValidateSeries asserts the provided bars form a non-empty series with
// strictly ascending timestamps.
func ValidateSeries(bars []Bar) error {
	if len(bars) == 0 {
		return &EmptyInputError{}
	}

	for idx := 1; idx < len(bars); idx++ {
		prev := bars[idx-1].Date
		current := bars[idx].Date
		if !current.After(prev) {
			return &InputOrderError{
				Index:    idx,
				Previous: prev,
				Current:  current,
			}
		}
	}

	return nil
}

// MissingBars returns the number of base intervals absent from the series
// given the expected resolution. The series is assumed to be validated.
func MissingBars(bars []Bar, resolution time.Duration) int {
	if resolution <= 0 {
		return 0
	}

	var missing int
	for idx := 1; idx < len(bars); idx++ {
		gap := bars[idx].Date.Sub(bars[idx-1].Date)
		if gap > resolution {
			missing += int(gap/resolution) - 1
		}
	}

	return missing
}
