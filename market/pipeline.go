package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/somwatee/HATS-v4/indicator"
	"github.com/somwatee/HATS-v4/priceaction"
	"github.com/somwatee/HATS-v4/shared"
)

const (
	// defaultResolution is the default base bar resolution.
	defaultResolution = time.Minute
	// defaultHTFMultiplier is the default number of base bars per higher timeframe bucket.
	defaultHTFMultiplier = 15
)

// PipelineConfig represents the configuration for the feature pipeline.
type PipelineConfig struct {
	// Resolution is the expected interval between base bars.
	Resolution time.Duration
	// HTFMultiplier is the number of base intervals per higher timeframe bucket.
	HTFMultiplier int
	// ATRWindow is the number of bars averaged by the true range indicator.
	ATRWindow int32
	// VWAPWindow is the number of bars covered by the rolling vwap.
	VWAPWindow int32
	// HTFStamp selects the bucket boundary higher timeframe values are joined at.
	HTFStamp indicator.Stamp
	// GapLookback caps the number of bars scanned backwards for an imbalance.
	GapLookback int
	// Logger represents the pipeline logger.
	Logger *zerolog.Logger
}

// applyDefaults sets defaults for unset configuration values.
func (cfg *PipelineConfig) applyDefaults() {
	if cfg.Resolution == 0 {
		cfg.Resolution = defaultResolution
	}
	if cfg.HTFMultiplier == 0 {
		cfg.HTFMultiplier = defaultHTFMultiplier
	}
	if cfg.ATRWindow == 0 {
		cfg.ATRWindow = indicator.DefaultWindow
	}
	if cfg.VWAPWindow == 0 {
		cfg.VWAPWindow = indicator.DefaultWindow
	}
	if cfg.GapLookback == 0 {
		cfg.GapLookback = priceaction.DefaultGapLookback
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
}

// Validate asserts the config sane inputs.
func (cfg *PipelineConfig) Validate() error {
	var errs error

	if cfg.Resolution < 0 {
		errs = errors.Join(errs, fmt.Errorf("resolution cannot be negative"))
	}
	if cfg.HTFMultiplier < 0 {
		errs = errors.Join(errs, fmt.Errorf("htf multiplier cannot be negative"))
	}
	if cfg.ATRWindow < 0 {
		errs = errors.Join(errs, fmt.Errorf("atr window cannot be negative"))
	}
	if cfg.VWAPWindow < 0 {
		errs = errors.Join(errs, fmt.Errorf("vwap window cannot be negative"))
	}
	if cfg.GapLookback < 0 {
		errs = errors.Join(errs, fmt.Errorf("gap lookback cannot be negative"))
	}
	if cfg.HTFStamp != indicator.StampOpen && cfg.HTFStamp != indicator.StampClose {
		errs = errors.Join(errs, fmt.Errorf("unknown htf stamp %d", cfg.HTFStamp))
	}

	return errs
}

// Pipeline turns an ordered bar series into feature rows.
type Pipeline struct {
	cfg *PipelineConfig
}

// NewPipeline initializes a new feature pipeline.
func NewPipeline(cfg *PipelineConfig) (*Pipeline, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating pipeline config: %w", err)
	}

	cfg.applyDefaults()

	return &Pipeline{cfg: cfg}, nil
}

// Run computes one feature row per bar of the provided series. The series must
// be non-empty and strictly ascending in time.
func (p *Pipeline) Run(bars []shared.Bar) ([]shared.FeatureRow, error) {
	err := shared.ValidateSeries(bars)
	if err != nil {
		return nil, err
	}

	missing := shared.MissingBars(bars, p.cfg.Resolution)
	if missing > 0 {
		p.cfg.Logger.Warn().Msgf("bar series is missing %d bars at %s resolution", missing, p.cfg.Resolution)
	}

	structures := priceaction.DetectStructure(bars)

	atr, err := indicator.ATR(bars, p.cfg.ATRWindow)
	if err != nil {
		return nil, fmt.Errorf("computing atr: %w", err)
	}

	vwap, err := indicator.VWAP(bars, p.cfg.VWAPWindow)
	if err != nil {
		return nil, fmt.Errorf("computing vwap: %w", err)
	}

	width := p.cfg.Resolution * time.Duration(p.cfg.HTFMultiplier)
	buckets := indicator.Aggregate(bars, width, p.cfg.Resolution)
	htf := indicator.NewAsOfIndex(indicator.HigherTimeframe(buckets, p.cfg.HTFStamp))

	rows := make([]shared.FeatureRow, len(bars))
	var shifts, gaps int
	for idx := range bars {
		row := &rows[idx]
		row.Bar = bars[idx]
		row.ATR = atr[idx]
		row.VWAP = vwap[idx]

		point, ok := htf.At(bars[idx].Date)
		if ok {
			row.HTFEMA50 = point.EMA50
			row.HTFEMA200 = point.EMA200
			row.HTFRSI14 = point.RSI14
			row.HTFADX14 = point.ADX14
		}

		st := structures[idx]
		if !st.Shift {
			continue
		}

		shifts++
		row.IsBullMSS = st.Bullish
		row.MSSTime = st.Date
		row.SwingHigh = shared.Some(st.SwingHigh)
		row.SwingLow = shared.Some(st.SwingLow)

		fib := priceaction.NewRetracement(st.SwingHigh, st.SwingLow, st.Bullish)
		row.Fib61 = shared.Some(fib.Fib61)
		row.Fib50 = shared.Some(fib.Fib50)
		row.Fib38 = shared.Some(fib.Fib38)

		gap := priceaction.LocateGap(bars, idx, p.cfg.GapLookback)
		if !gap.Found() {
			continue
		}

		gaps++
		row.GapBottom = gap.Bottom
		row.GapTop = gap.Top
		row.GapTime = gap.Date

		// The pattern is read off the two bars leading into the gap's anchor.
		// A match of the gap time against this row's own time never holds, so
		// unlike that reading the flag is taken at the anchor.
		if gap.Anchor >= 2 {
			row.PatternFlag = priceaction.ConfirmPattern(&bars[gap.Anchor-2],
				&bars[gap.Anchor-1], row.IsBullMSS)
		}
	}

	p.cfg.Logger.Info().Msgf("computed %d feature rows (%d structure shifts, %d with imbalances, %d htf buckets)",
		len(rows), shifts, gaps, len(buckets))

	return rows, nil
}
