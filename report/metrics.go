package report

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/somwatee/HATS-v4/position"
)

// formatRatio formats a metric with four decimals, infinities as inf.
func formatRatio(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// FormatMetrics renders the provided metrics as the plain text metrics record.
func FormatMetrics(m *position.Metrics) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 128))
	fmt.Fprintf(buf, "Total Trades: %d\n", m.TotalTrades)
	fmt.Fprintf(buf, "Win Rate: %s\n", formatRatio(m.WinRate))
	fmt.Fprintf(buf, "Profit Factor: %s\n", formatRatio(m.ProfitFactor))
	fmt.Fprintf(buf, "Max Drawdown: %s\n", formatRatio(m.MaxDrawdown))
	fmt.Fprintf(buf, "Expectancy: %s\n", formatRatio(m.Expectancy))

	return buf.Bytes()
}

// WriteMetrics writes the provided metrics as a plain text record.
func WriteMetrics(path string, m *position.Metrics) error {
	err := ensureDir(path)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, FormatMetrics(m), 0o644)
	if err != nil {
		return fmt.Errorf("writing metrics '%s': %w", path, err)
	}

	return nil
}
