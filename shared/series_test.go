package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestValidateSeries(t *testing.T) {
	start := time.Date(2025, 2, 4, 15, 0, 0, 0, time.UTC)

	// Ensure an empty series is rejected.
	err := ValidateSeries(nil)
	var emptyErr *EmptyInputError
	assert.True(t, errors.As(err, &emptyErr))

	// Ensure a single bar is a valid series.
	err = ValidateSeries([]Bar{{Date: start}})
	assert.NoError(t, err)

	// Ensure ascending timestamps are valid.
	err = ValidateSeries([]Bar{
		{Date: start},
		{Date: start.Add(time.Minute)},
		{Date: start.Add(time.Minute * 3)},
	})
	assert.NoError(t, err)

	// Ensure duplicate timestamps are rejected.
	err = ValidateSeries([]Bar{
		{Date: start},
		{Date: start.Add(time.Minute)},
		{Date: start.Add(time.Minute)},
	})
	var orderErr *InputOrderError
	assert.True(t, errors.As(err, &orderErr))
	assert.Equal(t, orderErr.Index, 2)

	// Ensure out of order timestamps are rejected.
	err = ValidateSeries([]Bar{
		{Date: start.Add(time.Minute)},
		{Date: start},
	})
	assert.True(t, errors.As(err, &orderErr))
	assert.Equal(t, orderErr.Index, 1)
	assert.Equal(t, orderErr.Current, start)
}

func TestMissingBars(t *testing.T) {
	start := time.Date(2025, 2, 4, 15, 0, 0, 0, time.UTC)
	bars := []Bar{
		{Date: start},
		{Date: start.Add(time.Minute)},
		{Date: start.Add(time.Minute * 4)},
		{Date: start.Add(time.Minute * 5)},
	}

	// Ensure missing intervals are counted.
	assert.Equal(t, MissingBars(bars, time.Minute), 2)

	// Ensure a coarser resolution reports nothing missing.
	assert.Equal(t, MissingBars(bars, time.Minute*5), 0)

	// Ensure an unset resolution reports nothing missing.
	assert.Equal(t, MissingBars(bars, 0), 0)
}
