package priceaction

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/somwatee/HATS-v4/shared"
)

var start = time.Date(2025, 2, 4, 15, 0, 0, 0, time.UTC)

// newBar creates a bar at the provided minute offset.
func newBar(minute int, open float64, high float64, low float64, close float64) shared.Bar {
	return shared.Bar{
		Date:   start.Add(time.Minute * time.Duration(minute)),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: 1,
	}
}

func TestDetectShift(t *testing.T) {
	prev := newBar(0, 10, 12, 8, 11)

	tests := []struct {
		name    string
		current shared.Bar
		shift   bool
		bullish bool
	}{
		{
			name:    "bullish shift",
			current: newBar(1, 11, 14, 10, 13),
			shift:   true,
			bullish: true,
		},
		{
			name:    "bearish shift",
			current: newBar(1, 9, 9.5, 6, 7),
			shift:   true,
			bullish: false,
		},
		{
			name:    "inside close",
			current: newBar(1, 11, 13, 9, 10),
			shift:   false,
		},
		{
			name:    "close equal to previous high",
			current: newBar(1, 11, 13, 9, 12),
			shift:   false,
		},
	}

	for _, test := range tests {
		structure := DetectShift(&prev, &test.current)
		if structure.Shift != test.shift {
			t.Errorf("%s: expected shift %v, got %v", test.name, test.shift, structure.Shift)
		}
		if structure.Bullish != test.bullish {
			t.Errorf("%s: expected bullish %v, got %v", test.name, test.bullish, structure.Bullish)
		}

		if test.shift {
			// Ensure the swing bounds are the triggering bar's own range.
			assert.Equal(t, structure.SwingHigh, test.current.High)
			assert.Equal(t, structure.SwingLow, test.current.Low)
			assert.Equal(t, structure.Date, test.current.Date)
		} else {
			assert.True(t, structure.Date.IsZero())
		}
	}
}

func TestDetectStructure(t *testing.T) {
	bars := []shared.Bar{
		newBar(0, 10, 12, 8, 13),
		newBar(1, 11, 14, 10, 13),
		newBar(2, 12, 13, 11, 12),
		newBar(3, 12, 12.5, 9, 9.5),
	}

	set := DetectStructure(bars)
	assert.Equal(t, len(set), len(bars))

	// Ensure the first bar is never a shift, even when it would qualify.
	assert.False(t, set[0].Shift)

	assert.True(t, set[1].Shift)
	assert.True(t, set[1].Bullish)

	// Ensure a prior shift is not carried forward.
	assert.False(t, set[2].Shift)

	assert.True(t, set[3].Shift)
	assert.False(t, set[3].Bullish)

	// Ensure an empty series yields no structure.
	assert.Equal(t, len(DetectStructure(nil)), 0)
}
