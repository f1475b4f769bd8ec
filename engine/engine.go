package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/somwatee/HATS-v4/shared"
)

const (
	// DefaultADXThreshold is the default minimum higher timeframe trend strength.
	DefaultADXThreshold = 18.0
	// DefaultClassifierThreshold is the default minimum class probability for a fallback signal.
	DefaultClassifierThreshold = 0.70
	// defaultClassifierTimeout is the default deadline of a single classifier call.
	defaultClassifierTimeout = 2 * time.Second
	// rsiMidline separates bullish from bearish higher timeframe momentum.
	rsiMidline = 50.0
)

// EngineConfig represents the configuration for the signal engine.
type EngineConfig struct {
	// ADXThreshold is the minimum higher timeframe adx required to confirm a
	// trend. DefaultADXThreshold applies when nil.
	ADXThreshold *float64
	// ClassifierThreshold is the minimum class probability for a fallback
	// signal. DefaultClassifierThreshold applies when nil.
	ClassifierThreshold *float64
	// Classifier is the optional fallback classifier. Without one only the primary path runs.
	Classifier shared.Classifier
	// Classes is the ordered class set the classifier is expected to return.
	Classes []string
	// ClassifierTimeout is the deadline of a single classifier call.
	ClassifierTimeout time.Duration
	// StrictFallback restricts the fallback path to rows with a structure shift and an imbalance.
	StrictFallback bool
	// Logger represents the engine logger.
	Logger *zerolog.Logger
}

// applyDefaults sets defaults for unset configuration values.
func (cfg *EngineConfig) applyDefaults() {
	if cfg.ADXThreshold == nil {
		threshold := DefaultADXThreshold
		cfg.ADXThreshold = &threshold
	}
	if cfg.ClassifierThreshold == nil {
		threshold := DefaultClassifierThreshold
		cfg.ClassifierThreshold = &threshold
	}
	if len(cfg.Classes) == 0 {
		cfg.Classes = requiredClasses
	}
	if cfg.ClassifierTimeout == 0 {
		cfg.ClassifierTimeout = defaultClassifierTimeout
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
}

// Validate asserts the config sane inputs.
func (cfg *EngineConfig) Validate() error {
	var errs error

	if cfg.ADXThreshold != nil && *cfg.ADXThreshold < 0 {
		errs = errors.Join(errs, fmt.Errorf("adx threshold cannot be negative"))
	}
	if cfg.ClassifierThreshold != nil && (*cfg.ClassifierThreshold < 0 || *cfg.ClassifierThreshold > 1) {
		errs = errors.Join(errs, fmt.Errorf("classifier threshold must be within [0, 1]"))
	}
	if len(cfg.Classes) > 0 && !hasRequiredClasses(cfg.Classes) {
		errs = errors.Join(errs, fmt.Errorf("classes must include %v", requiredClasses))
	}
	if cfg.ClassifierTimeout < 0 {
		errs = errors.Join(errs, fmt.Errorf("classifier timeout cannot be negative"))
	}

	return errs
}

// Engine labels feature rows with trade signals and exit ladders.
type Engine struct {
	cfg *EngineConfig
}

// NewEngine initializes a new signal engine.
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating engine config: %w", err)
	}

	cfg.applyDefaults()

	return &Engine{cfg: cfg}, nil
}

// direction returns the label implied by the row's structure shift.
func direction(row *shared.FeatureRow) shared.Label {
	if row.IsBullMSS {
		return shared.Buy
	}

	return shared.Sell
}

// pullbackPrice returns the close the pullback condition is measured on.
func pullbackPrice(rows []shared.FeatureRow, idx int) float64 {
	if idx == 0 {
		return rows[idx].Close
	}

	return rows[idx-1].Close
}

// hasOverlap returns whether the row's imbalance overlaps its retracement zone.
func hasOverlap(row *shared.FeatureRow) bool {
	if !row.Fib61.Valid || !row.Fib38.Valid {
		return false
	}

	return row.GapTop >= row.Fib38.Value && row.GapBottom <= row.Fib61.Value
}

// hasPullback returns whether the provided price lies within the row's imbalance.
func hasPullback(row *shared.FeatureRow, price float64) bool {
	return price >= row.GapBottom && price <= row.GapTop
}

// confirmsTrend returns whether the higher timeframe supports the provided direction.
func (e *Engine) confirmsTrend(row *shared.FeatureRow, label shared.Label) bool {
	if !row.HTFEMA50.Valid || !row.HTFEMA200.Valid || !row.HTFRSI14.Valid || !row.HTFADX14.Valid {
		return false
	}

	if row.HTFADX14.Value < *e.cfg.ADXThreshold {
		return false
	}

	switch label {
	case shared.Buy:
		return row.HTFEMA50.Value > row.HTFEMA200.Value && row.HTFRSI14.Value > rsiMidline
	case shared.Sell:
		return row.HTFEMA50.Value < row.HTFEMA200.Value && row.HTFRSI14.Value < rsiMidline
	default:
		return false
	}
}

// primary evaluates the rule based path for the row at the provided index.
func (e *Engine) primary(rows []shared.FeatureRow, idx int) (shared.LabeledRow, bool) {
	row := &rows[idx]
	if !row.HasMSS() || !row.HasGap() {
		return shared.LabeledRow{}, false
	}

	label := direction(row)
	entry := pullbackPrice(rows, idx)
	if !hasOverlap(row) || !hasPullback(row, entry) || !e.confirmsTrend(row, label) {
		return shared.LabeledRow{}, false
	}

	if !row.ATR.Valid || !row.VWAP.Valid || !row.SwingHigh.Valid || !row.SwingLow.Valid {
		return shared.LabeledRow{}, false
	}

	ladder := ComputeLadder(label, entry, row.SwingHigh.Value, row.SwingLow.Value,
		row.GapBottom, row.GapTop, row.ATR.Value, row.VWAP.Value)

	return labeledRow(row, label, shared.Primary, entry, ladder), true
}

// fallback evaluates the classifier path for the provided row. Transport
// failures skip the row, contract violations are returned.
func (e *Engine) fallback(ctx context.Context, row *shared.FeatureRow) (shared.LabeledRow, bool, error) {
	if e.cfg.Classifier == nil {
		return shared.LabeledRow{}, false, nil
	}

	if e.cfg.StrictFallback && (!row.HasMSS() || !row.HasGap()) {
		return shared.LabeledRow{}, false, nil
	}

	cctx, cancel := context.WithTimeout(ctx, e.cfg.ClassifierTimeout)
	probs, err := e.cfg.Classifier.Predict(cctx, row.Vector())
	cancel()
	if err != nil {
		var contractErr *shared.ClassifierContractError
		if errors.As(err, &contractErr) {
			return shared.LabeledRow{}, false, err
		}
		if ctx.Err() != nil {
			return shared.LabeledRow{}, false, ctx.Err()
		}

		e.cfg.Logger.Warn().Err(err).Msgf("skipping classifier fallback for bar at %s",
			row.Date.Format(shared.DateLayout))
		return shared.LabeledRow{}, false, nil
	}

	err = validateProbabilities(probs, e.cfg.Classes)
	if err != nil {
		return shared.LabeledRow{}, false, err
	}

	var label shared.Label
	switch {
	case probs[shared.Buy.String()] >= *e.cfg.ClassifierThreshold:
		label = shared.Buy
	case probs[shared.Sell.String()] >= *e.cfg.ClassifierThreshold:
		label = shared.Sell
	default:
		return shared.LabeledRow{}, false, nil
	}

	// Gap bounds are used as is and are zero without a gap. Null swing, atr
	// and vwap inputs yield NaN levels that can never be touched.
	entry := row.Close
	ladder := ComputeLadder(label, entry, row.SwingHigh.OrNaN(), row.SwingLow.OrNaN(),
		row.GapBottom, row.GapTop, row.ATR.OrNaN(), row.VWAP.OrNaN())

	return labeledRow(row, label, shared.Fallback, entry, ladder), true, nil
}

// labeledRow creates a labeled row from the provided signal.
func labeledRow(row *shared.FeatureRow, label shared.Label, source shared.SignalSource, entry float64, ladder Ladder) shared.LabeledRow {
	return shared.LabeledRow{
		FeatureRow: *row,
		Label:      label,
		Source:     source,
		EntryPrice: entry,
		StopLoss:   ladder.StopLoss,
		Target1:    ladder.Target1,
		Target2:    ladder.Target2,
		Target3:    ladder.Target3,
	}
}

// Label labels every provided row. Rows are labeled in order and the
// classifier, when configured, is consulted once per row the primary path
// does not fire for.
func (e *Engine) Label(ctx context.Context, rows []shared.FeatureRow) ([]shared.LabeledRow, error) {
	labeled := make([]shared.LabeledRow, len(rows))
	var primaries, fallbacks int
	for idx := range rows {
		row, ok := e.primary(rows, idx)
		if ok {
			primaries++
			labeled[idx] = row
			continue
		}

		row, ok, err := e.fallback(ctx, &rows[idx])
		if err != nil {
			return nil, fmt.Errorf("labeling bar at %s: %w", rows[idx].Date.Format(shared.DateLayout), err)
		}
		if ok {
			fallbacks++
			labeled[idx] = row
			continue
		}

		labeled[idx] = shared.LabeledRow{FeatureRow: rows[idx]}
	}

	e.cfg.Logger.Info().Msgf("labeled %d rows (%d primary signals, %d fallback signals)",
		len(rows), primaries, fallbacks)

	return labeled, nil
}
