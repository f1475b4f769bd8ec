package position

import (
	"time"

	"github.com/google/uuid"
	"github.com/somwatee/HATS-v4/shared"
)

// ExitReason represents the level that closed a trade.
type ExitReason int

const (
	Target1 ExitReason = iota
	Target2
	Target3
	StopLoss
	EndOfSeries
)

// String stringifies the provided exit reason.
func (r ExitReason) String() string {
	switch r {
	case Target1:
		return "target1"
	case Target2:
		return "target2"
	case Target3:
		return "target3"
	case StopLoss:
		return "stoploss"
	case EndOfSeries:
		return "endofseries"
	default:
		return "unknown"
	}
}

// tradeNamespace scopes trade ids.
var tradeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hats/trade"))

// Trade represents a closed simulated trade.
type Trade struct {
	ID          string
	EntryTime   time.Time
	ExitTime    time.Time
	Side        shared.Label
	Source      shared.SignalSource
	EntryPrice  float64
	ExitPrice   float64
	PNL         float64
	StopLoss    float64
	Target1     float64
	Target2     float64
	Target3     float64
	ATRAtEntry  float64
	VWAPAtEntry float64
	ExitReason  ExitReason
}

// tradeID derives a stable trade id from the entry time and side.
func tradeID(entryTime time.Time, side shared.Label) string {
	name := entryTime.UTC().Format(time.RFC3339Nano) + "/" + side.String()
	return uuid.NewSHA1(tradeNamespace, []byte(name)).String()
}

// newTrade opens a trade from the provided labeled row.
func newTrade(row *shared.LabeledRow) *Trade {
	return &Trade{
		ID:          tradeID(row.Date, row.Label),
		EntryTime:   row.Date,
		Side:        row.Label,
		Source:      row.Source,
		EntryPrice:  row.EntryPrice,
		StopLoss:    row.StopLoss,
		Target1:     row.Target1,
		Target2:     row.Target2,
		Target3:     row.Target3,
		ATRAtEntry:  row.ATR.OrZero(),
		VWAPAtEntry: row.VWAP.OrZero(),
	}
}

// close closes the trade at the provided price and time.
func (t *Trade) close(price float64, at time.Time, reason ExitReason) {
	t.ExitPrice = price
	t.ExitTime = at
	t.ExitReason = reason

	switch t.Side {
	case shared.Buy:
		t.PNL = t.ExitPrice - t.EntryPrice
	case shared.Sell:
		t.PNL = t.EntryPrice - t.ExitPrice
	}
}

// exitLevel checks the provided bar against the trade's exit ladder in
// priority order, targets before the stop loss.
func (t *Trade) exitLevel(bar *shared.Bar) (float64, ExitReason, bool) {
	switch t.Side {
	case shared.Buy:
		switch {
		case bar.High >= t.Target1:
			return t.Target1, Target1, true
		case bar.High >= t.Target2:
			return t.Target2, Target2, true
		case bar.High >= t.Target3:
			return t.Target3, Target3, true
		case bar.Low <= t.StopLoss:
			return t.StopLoss, StopLoss, true
		}
	case shared.Sell:
		switch {
		case bar.Low <= t.Target1:
			return t.Target1, Target1, true
		case bar.Low <= t.Target2:
			return t.Target2, Target2, true
		case bar.Low <= t.Target3:
			return t.Target3, Target3, true
		case bar.High >= t.StopLoss:
			return t.StopLoss, StopLoss, true
		}
	}

	return 0, 0, false
}
