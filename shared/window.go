package shared

import (
	"errors"
)

// Window represents a fixed size rolling window of values.
type Window struct {
	data  []float64
	start int32
	count int32
	size  int32
}

// NewWindow initializes a new rolling window.
func NewWindow(size int32) (*Window, error) {
	if size < 0 {
		return nil, errors.New("window size cannot be negative")
	}
	if size == 0 {
		return nil, errors.New("window size cannot be zero")
	}

	return &Window{
		data: make([]float64, size),
		size: size,
	}, nil
}

// Update adds the provided value to the window, evicting the oldest value
// when at capacity.
func (w *Window) Update(value float64) {
	end := (w.start + w.count) % w.size
	w.data[end] = value

	if w.count == w.size {
		// Overwrite the oldest entry when the window is at capacity.
		w.start = (w.start + 1) % w.size
		return
	}

	w.count++
}

// Full returns whether the window holds size values.
func (w *Window) Full() bool {
	return w.count == w.size
}

// Sum returns the sum of the values in the window, oldest first.
func (w *Window) Sum() float64 {
	var sum float64
	for i := range w.count {
		sum += w.data[(w.start+i)%w.size]
	}

	return sum
}

// Mean returns the average of the values in the window, zero if empty.
func (w *Window) Mean() float64 {
	if w.count == 0 {
		return 0
	}

	return w.Sum() / float64(w.count)
}
