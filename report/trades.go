package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/somwatee/HATS-v4/position"
)

// tradeHeader is the trade log csv header.
var tradeHeader = []string{
	"id", "entryTime", "exitTime", "side", "entryPrice", "exitPrice", "pnl",
	"ATR_at_entry", "VWAP_at_entry", "source", "exitReason",
	"stopLoss", "target1", "target2", "target3",
}

// floatStr formats the provided float for the trade log. NaN levels are
// written as empty fields.
func floatStr(f float64) string {
	if math.IsNaN(f) {
		return ""
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ensureDir creates the parent directory of the provided path.
func ensureDir(path string) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("creating directory for '%s': %w", path, err)
	}

	return nil
}

// WriteTradesCSV writes the provided trades as a csv trade log.
func WriteTradesCSV(path string, trades []position.Trade) error {
	err := ensureDir(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trade log '%s': %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(tradeHeader)
	if err != nil {
		return fmt.Errorf("writing trade log header: %w", err)
	}

	for idx := range trades {
		trade := &trades[idx]
		err := w.Write([]string{
			trade.ID,
			trade.EntryTime.Format(time.DateTime),
			trade.ExitTime.Format(time.DateTime),
			trade.Side.String(),
			floatStr(trade.EntryPrice),
			floatStr(trade.ExitPrice),
			floatStr(trade.PNL),
			floatStr(trade.ATRAtEntry),
			floatStr(trade.VWAPAtEntry),
			trade.Source.String(),
			trade.ExitReason.String(),
			floatStr(trade.StopLoss),
			floatStr(trade.Target1),
			floatStr(trade.Target2),
			floatStr(trade.Target3),
		})
		if err != nil {
			return fmt.Errorf("writing trade %s: %w", trade.ID, err)
		}
	}

	w.Flush()
	err = w.Error()
	if err != nil {
		return fmt.Errorf("flushing trade log: %w", err)
	}

	return f.Close()
}

// TradeRecord is the columnar trade log record.
type TradeRecord struct {
	ID          string  `parquet:"id"`
	EntryTime   int64   `parquet:"entry_time"` // Unix timestamp in milliseconds
	ExitTime    int64   `parquet:"exit_time"`  // Unix timestamp in milliseconds
	Side        string  `parquet:"side"`
	Source      string  `parquet:"source"`
	EntryPrice  float64 `parquet:"entry_price"`
	ExitPrice   float64 `parquet:"exit_price"`
	PNL         float64 `parquet:"pnl"`
	StopLoss    float64 `parquet:"stop_loss"`
	Target1     float64 `parquet:"target1"`
	Target2     float64 `parquet:"target2"`
	Target3     float64 `parquet:"target3"`
	ATRAtEntry  float64 `parquet:"atr_at_entry"`
	VWAPAtEntry float64 `parquet:"vwap_at_entry"`
	ExitReason  string  `parquet:"exit_reason"`
}

// NewTradeRecord creates a columnar record from the provided trade.
func NewTradeRecord(trade *position.Trade) TradeRecord {
	return TradeRecord{
		ID:          trade.ID,
		EntryTime:   trade.EntryTime.UnixMilli(),
		ExitTime:    trade.ExitTime.UnixMilli(),
		Side:        trade.Side.String(),
		Source:      trade.Source.String(),
		EntryPrice:  trade.EntryPrice,
		ExitPrice:   trade.ExitPrice,
		PNL:         trade.PNL,
		StopLoss:    trade.StopLoss,
		Target1:     trade.Target1,
		Target2:     trade.Target2,
		Target3:     trade.Target3,
		ATRAtEntry:  trade.ATRAtEntry,
		VWAPAtEntry: trade.VWAPAtEntry,
		ExitReason:  trade.ExitReason.String(),
	}
}

// WriteTradesParquet writes the provided trades as a parquet trade log.
func WriteTradesParquet(path string, trades []position.Trade) error {
	err := ensureDir(path)
	if err != nil {
		return err
	}

	records := make([]TradeRecord, len(trades))
	for idx := range trades {
		records[idx] = NewTradeRecord(&trades[idx])
	}

	err = parquet.WriteFile(path, records)
	if err != nil {
		return fmt.Errorf("writing parquet trade log '%s': %w", path, err)
	}

	return nil
}
