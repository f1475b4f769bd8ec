package engine

import "github.com/somwatee/HATS-v4/shared"

// ConditionCounts tracks how many structure shift rows satisfy each primary condition.
type ConditionCounts struct {
	Shifts        int
	Gaps          int
	Overlaps      int
	Pullbacks     int
	Confirmations int
	Matches       int
}

// Diagnostics breaks primary condition counts down by direction.
type Diagnostics struct {
	Bullish ConditionCounts
	Bearish ConditionCounts
}

// Diagnose counts the rows satisfying each primary path condition. A row
// counts towards a condition independently of the others; Matches counts rows
// satisfying all of them.
func (e *Engine) Diagnose(rows []shared.FeatureRow) Diagnostics {
	var diag Diagnostics
	for idx := range rows {
		row := &rows[idx]
		if !row.HasMSS() {
			continue
		}

		label := direction(row)
		counts := &diag.Bearish
		if label == shared.Buy {
			counts = &diag.Bullish
		}

		counts.Shifts++
		if !row.HasGap() {
			continue
		}

		counts.Gaps++
		overlap := hasOverlap(row)
		pullback := hasPullback(row, pullbackPrice(rows, idx))
		confirmed := e.confirmsTrend(row, label)

		if overlap {
			counts.Overlaps++
		}
		if pullback {
			counts.Pullbacks++
		}
		if confirmed {
			counts.Confirmations++
		}
		if overlap && pullback && confirmed {
			counts.Matches++
		}
	}

	return diag
}
