package position

import (
	"github.com/rs/zerolog"
	"github.com/somwatee/HATS-v4/shared"
)

// SimulatorConfig represents the configuration for the trade simulator.
type SimulatorConfig struct {
	// Logger represents the simulator logger.
	Logger *zerolog.Logger
}

// Simulator replays labeled rows through a single position at a time.
type Simulator struct {
	cfg *SimulatorConfig
}

// NewSimulator initializes a new trade simulator.
func NewSimulator(cfg *SimulatorConfig) *Simulator {
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	return &Simulator{cfg: cfg}
}

// Run replays the provided rows and returns the closed trades in entry order.
// Only one trade is open at a time and bars consumed by an open trade are never
// considered for new entries.
func (s *Simulator) Run(rows []shared.LabeledRow) []Trade {
	trades := []Trade{}
	n := len(rows)

	idx := 0
	for idx < n {
		row := &rows[idx]
		if row.Label == shared.NoTrade {
			idx++
			continue
		}

		trade := newTrade(row)
		closed := false
		for j := idx + 1; j < n; j++ {
			price, reason, ok := trade.exitLevel(&rows[j].Bar)
			if !ok {
				continue
			}

			trade.close(price, rows[j].Date, reason)
			trades = append(trades, *trade)
			closed = true
			idx = j + 1
			break
		}

		if !closed {
			last := &rows[n-1]
			trade.close(last.Close, last.Date, EndOfSeries)
			trades = append(trades, *trade)
			idx = n
		}

		s.cfg.Logger.Debug().Msgf("closed %s trade %s at %.5f (%s, pnl %.5f)", trade.Side,
			trade.ID, trade.ExitPrice, trade.ExitReason, trade.PNL)
	}

	s.cfg.Logger.Info().Msgf("simulated %d trades over %d rows", len(trades), n)

	return trades
}
