package indicator

import (
	"fmt"
	"math"

	"github.com/somwatee/HATS-v4/shared"
)

// ATRGenerator represents a rolling simple average true range indicator.
type ATRGenerator struct {
	trueRange *shared.Window
	prev      *shared.Bar
	Current   shared.Float
}

// NewATRGenerator initializes an ATR indicator over the provided number of bars.
func NewATRGenerator(window int32) (*ATRGenerator, error) {
	trueRange, err := shared.NewWindow(window)
	if err != nil {
		return nil, fmt.Errorf("creating true range window: %w", err)
	}

	return &ATRGenerator{trueRange: trueRange}, nil
}

// TrueRange returns the true range of the current bar given the previous bar.
// Without a previous bar the true range is the bar's own range.
func TrueRange(prev *shared.Bar, current *shared.Bar) float64 {
	if prev == nil {
		return current.Range()
	}

	return math.Max(current.Range(), math.Max(
		math.Abs(current.High-prev.Close),
		math.Abs(current.Low-prev.Close)))
}

// Update updates the ATR indicator with the provided bar. The result is null
// until the window is full.
func (a *ATRGenerator) Update(bar *shared.Bar) shared.Float {
	a.trueRange.Update(TrueRange(a.prev, bar))
	a.prev = bar

	a.Current = shared.Float{}
	if a.trueRange.Full() {
		a.Current = shared.Some(a.trueRange.Mean())
	}

	return a.Current
}

// ATR calculates the rolling ATR for every bar of the provided series.
func ATR(bars []shared.Bar, window int32) ([]shared.Float, error) {
	gen, err := NewATRGenerator(window)
	if err != nil {
		return nil, err
	}

	set := make([]shared.Float, len(bars))
	for idx := range bars {
		set[idx] = gen.Update(&bars[idx])
	}

	return set, nil
}
