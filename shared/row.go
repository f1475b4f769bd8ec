package shared

import "time"

// FeatureCount is the length of a feature vector.
const FeatureCount = 20

// FeatureNames lists the feature vector entries in order.
var FeatureNames = [FeatureCount]string{
	"open", "high", "low", "close", "volume",
	"isBullMSS", "swingLow", "swingHigh",
	"gapBottom", "gapTop",
	"fib61", "fib50", "fib38",
	"atr", "vwap",
	"htfEma50", "htfEma200", "htfRsi14", "htfAdx14",
	"patternFlag",
}

// FeatureRow represents a bar enriched with its structural and indicator features.
type FeatureRow struct {
	Bar

	// Market structure shift.
	SwingHigh Float
	SwingLow  Float
	IsBullMSS bool
	MSSTime   time.Time

	// Price imbalance zone, zero when no gap was found.
	GapBottom float64
	GapTop    float64
	GapTime   time.Time

	// Retracement levels, only valid when a shift occurred.
	Fib61 Float
	Fib50 Float
	Fib38 Float

	// Rolling base timeframe indicators.
	ATR  Float
	VWAP Float

	// Higher timeframe indicators.
	HTFEMA50  Float
	HTFEMA200 Float
	HTFRSI14  Float
	HTFADX14  Float

	PatternFlag bool
}

// HasMSS returns whether a market structure shift occurred at the row.
func (r *FeatureRow) HasMSS() bool {
	return !r.MSSTime.IsZero()
}

// HasGap returns whether a price imbalance zone was found for the row.
func (r *FeatureRow) HasGap() bool {
	return r.GapBottom != 0
}

// Vector returns the row's feature vector, nulls as zero.
func (r *FeatureRow) Vector() []float64 {
	return []float64{
		r.Open, r.High, r.Low, r.Close, r.Volume,
		boolToFloat(r.IsBullMSS), r.SwingLow.OrZero(), r.SwingHigh.OrZero(),
		r.GapBottom, r.GapTop,
		r.Fib61.OrZero(), r.Fib50.OrZero(), r.Fib38.OrZero(),
		r.ATR.OrZero(), r.VWAP.OrZero(),
		r.HTFEMA50.OrZero(), r.HTFEMA200.OrZero(), r.HTFRSI14.OrZero(), r.HTFADX14.OrZero(),
		boolToFloat(r.PatternFlag),
	}
}

// boolToFloat converts the provided flag to 1 or 0.
func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// LabeledRow represents a feature row with its trade decision and exit ladder.
type LabeledRow struct {
	FeatureRow

	Label      Label
	Source     SignalSource
	EntryPrice float64
	StopLoss   float64
	Target1    float64
	Target2    float64
	Target3    float64
}
