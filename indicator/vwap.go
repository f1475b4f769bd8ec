package indicator

import (
	"fmt"

	"github.com/somwatee/HATS-v4/shared"
)

const (
	// DefaultWindow is the default number of bars for rolling indicators.
	DefaultWindow = 14
)

// VWAPGenerator represents a rolling window Volume Weighted Average Price indicator.
type VWAPGenerator struct {
	typicalPriceVolume *shared.Window
	volume             *shared.Window
	Current            shared.Float
}

// NewVWAPGenerator initializes a VWAP indicator over the provided number of bars.
func NewVWAPGenerator(window int32) (*VWAPGenerator, error) {
	typicalPriceVolume, err := shared.NewWindow(window)
	if err != nil {
		return nil, fmt.Errorf("creating typical price volume window: %w", err)
	}

	volume, err := shared.NewWindow(window)
	if err != nil {
		return nil, fmt.Errorf("creating volume window: %w", err)
	}

	return &VWAPGenerator{
		typicalPriceVolume: typicalPriceVolume,
		volume:             volume,
	}, nil
}

// Update updates the VWAP indicator with the provided bar. The result is null
// until the window is full and whenever the window holds no volume.
func (v *VWAPGenerator) Update(bar *shared.Bar) shared.Float {
	v.typicalPriceVolume.Update(bar.TypicalPrice() * bar.Volume)
	v.volume.Update(bar.Volume)

	v.Current = shared.Float{}
	if !v.volume.Full() {
		return v.Current
	}

	volume := v.volume.Sum()
	if volume == 0 {
		return v.Current
	}

	v.Current = shared.Some(v.typicalPriceVolume.Sum() / volume)

	return v.Current
}

// VWAP calculates the rolling VWAP for every bar of the provided series.
func VWAP(bars []shared.Bar, window int32) ([]shared.Float, error) {
	gen, err := NewVWAPGenerator(window)
	if err != nil {
		return nil, err
	}

	set := make([]shared.Float, len(bars))
	for idx := range bars {
		set[idx] = gen.Update(&bars[idx])
	}

	return set, nil
}
