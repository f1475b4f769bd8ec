package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestWindow(t *testing.T) {
	// Ensure window size cannot be negative or zero.
	_, err := NewWindow(-1)
	assert.Error(t, err)

	_, err = NewWindow(0)
	assert.Error(t, err)

	// Ensure a window can be created.
	size := int32(3)
	window, err := NewWindow(size)
	assert.NoError(t, err)
	assert.False(t, window.Full())
	assert.Equal(t, window.Mean(), float64(0))

	// Ensure the window can be updated.
	window.Update(1)
	window.Update(2)
	assert.False(t, window.Full())
	assert.Equal(t, window.Sum(), float64(3))
	assert.Equal(t, window.Mean(), float64(1.5))

	window.Update(3)
	assert.True(t, window.Full())
	assert.Equal(t, window.Sum(), float64(6))
	assert.Equal(t, window.count, size)
	assert.Equal(t, window.start, int32(0))

	// Ensure updates at capacity evict the oldest value.
	window.Update(10)
	assert.True(t, window.Full())
	assert.Equal(t, window.Sum(), float64(15))
	assert.Equal(t, window.Mean(), float64(5))
	assert.Equal(t, window.start, int32(1))
}
