package position

import "math"

// Metrics represents the performance summary of a set of trades.
type Metrics struct {
	TotalTrades  int
	WinCount     int
	LossCount    int
	WinRate      float64
	ProfitFactor float64
	MaxDrawdown  float64
	Expectancy   float64
}

// Evaluate reduces the provided trades, in entry order, to performance metrics.
func Evaluate(trades []Trade) Metrics {
	m := Metrics{TotalTrades: len(trades)}
	if m.TotalTrades == 0 {
		return m
	}

	var wins, losses, equity, peak float64
	for idx := range trades {
		pnl := trades[idx].PNL
		switch {
		case pnl > 0:
			m.WinCount++
			wins += pnl
		case pnl < 0:
			m.LossCount++
			losses += -pnl
		}

		equity += pnl
		if idx == 0 || equity > peak {
			peak = equity
		}
		m.MaxDrawdown = math.Max(m.MaxDrawdown, peak-equity)
	}

	m.WinRate = float64(m.WinCount) / float64(m.TotalTrades)

	switch {
	case losses > 0:
		m.ProfitFactor = wins / losses
	case wins > 0:
		m.ProfitFactor = math.Inf(1)
	}

	var avgWin, avgLoss float64
	if m.WinCount > 0 {
		avgWin = wins / float64(m.WinCount)
	}
	if m.LossCount > 0 {
		avgLoss = -losses / float64(m.LossCount)
	}
	m.Expectancy = avgWin*m.WinRate + avgLoss*(1-m.WinRate)

	return m
}

// Record returns the metrics as a flat key value record.
func (m *Metrics) Record() map[string]float64 {
	return map[string]float64{
		"totalTrades":  float64(m.TotalTrades),
		"winRate":      m.WinRate,
		"profitFactor": m.ProfitFactor,
		"maxDrawdown":  m.MaxDrawdown,
		"expectancy":   m.Expectancy,
	}
}
