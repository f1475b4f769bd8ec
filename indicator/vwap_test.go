package indicator

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/somwatee/HATS-v4/shared"
)

var start = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

func newBar(minute int, high float64, low float64, close float64, volume float64) shared.Bar {
	return shared.Bar{
		Date:   start.Add(time.Duration(minute) * time.Minute),
		Open:   close,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}

func TestVWAPGenerator(t *testing.T) {
	// Ensure a vwap generator cannot be created with an invalid window.
	_, err := NewVWAPGenerator(0)
	assert.Error(t, err)

	vwap, err := NewVWAPGenerator(2)
	assert.NoError(t, err)

	// Ensure vwap is null until the window is full.
	first := newBar(0, 9, 3, 6, 2)
	vwp := vwap.Update(&first)
	assert.False(t, vwp.Valid)

	// Ensure vwap is volume weighted over the window.
	second := newBar(1, 12, 6, 9, 1)
	vwp = vwap.Update(&second)
	assert.True(t, vwp.Valid)
	assert.Equal(t, vwp.Value, 7.0)

	// Ensure the oldest bar leaves the window.
	third := newBar(2, 12, 6, 9, 3)
	vwp = vwap.Update(&third)
	assert.True(t, vwp.Valid)
	assert.Equal(t, vwp.Value, 9.0)

	// Ensure vwap is null when the window holds no volume.
	empty := newBar(3, 12, 6, 9, 0)
	vwap.Update(&empty)
	empty = newBar(4, 12, 6, 9, 0)
	vwp = vwap.Update(&empty)
	assert.False(t, vwp.Valid)
	assert.False(t, vwap.Current.Valid)
}

func TestVWAPSeries(t *testing.T) {
	bars := []shared.Bar{
		newBar(0, 9, 3, 6, 2),
		newBar(1, 12, 6, 9, 1),
		newBar(2, 12, 6, 9, 3),
	}

	set, err := VWAP(bars, 2)
	assert.NoError(t, err)
	assert.Equal(t, len(set), len(bars))
	assert.False(t, set[0].Valid)
	assert.Equal(t, set[1], shared.Some(7))
	assert.Equal(t, set[2], shared.Some(9))

	_, err = VWAP(bars, -1)
	assert.Error(t, err)
}
