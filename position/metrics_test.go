package position

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func tradesWithPNL(pnls ...float64) []Trade {
	trades := make([]Trade, len(pnls))
	for idx, pnl := range pnls {
		trades[idx] = Trade{PNL: pnl}
	}

	return trades
}

func TestEvaluate(t *testing.T) {
	// Ensure no trades yield zero metrics.
	m := Evaluate(nil)
	assert.Equal(t, m, Metrics{})

	// Ensure a mixed set of trades is summarised.
	m = Evaluate(tradesWithPNL(10, -5, -5, 20, 0))
	assert.Equal(t, m.TotalTrades, 5)
	assert.Equal(t, m.WinCount, 2)
	assert.Equal(t, m.LossCount, 2)
	assert.Equal(t, m.WinRate, 0.4)
	assert.Equal(t, m.ProfitFactor, 3.0)
	assert.Equal(t, m.MaxDrawdown, 10.0)
	// 15 * 0.4 + -5 * 0.6
	assert.True(t, math.Abs(m.Expectancy-3) < 1e-9)

	// Ensure winners without losers have an infinite profit factor.
	m = Evaluate(tradesWithPNL(5, 3))
	assert.True(t, math.IsInf(m.ProfitFactor, 1))
	assert.Equal(t, m.WinRate, 1.0)
	assert.Equal(t, m.MaxDrawdown, 0.0)
	assert.Equal(t, m.Expectancy, 4.0)

	// Ensure flat trades have a zero profit factor.
	m = Evaluate(tradesWithPNL(0, 0))
	assert.Equal(t, m.ProfitFactor, 0.0)
	assert.Equal(t, m.WinRate, 0.0)
	assert.Equal(t, m.Expectancy, 0.0)

	// Ensure the drawdown peak starts at the first equity value.
	m = Evaluate(tradesWithPNL(-4, -2, 3))
	assert.Equal(t, m.MaxDrawdown, 2.0)
	assert.Equal(t, m.ProfitFactor, 0.5)
}

func TestMetricsRecord(t *testing.T) {
	m := Evaluate(tradesWithPNL(10, -5))
	record := m.Record()
	assert.Equal(t, len(record), 5)
	assert.Equal(t, record["totalTrades"], 2.0)
	assert.Equal(t, record["winRate"], 0.5)
	assert.Equal(t, record["profitFactor"], 2.0)
	assert.Equal(t, record["maxDrawdown"], 5.0)
	assert.Equal(t, record["expectancy"], 2.5)
}
