package synthesis

import (
	"fmt"
	"math"

	"finagentex/pkg/core/period"
	"finagentex/pkg/models"
)

// ApplyYoY computes the year-over-year percentage delta for every period of
// every row, in place. The comparison target is the same quarter one year
// earlier (previous year for annual labels). YoY stays nil when the prior
// period is absent or the prior value is exactly zero.
//
// This MUST run after Merge: the prior-year period often comes from a
// different filing than the current period, so a per-filing pass would
// silently drop valid comparisons.
func ApplyYoY(rows []models.StatementRow) {
	for i := range rows {
		for _, p := range sortedPeriodsOf(rows[i]) {
			cell := rows[i].Values[p]
			cell.YoY = yoyAgainstPrior(rows[i].Values, p, cell.Value)
			rows[i].Values[p] = cell
		}
	}
}

// PriorLabel returns the label one year earlier, or "" if p is unparsable.
func PriorLabel(p string) string {
	year, quarter := period.SortKey(p)
	if year == 0 {
		return ""
	}
	if len(p) == 4 { // annual "YYYY"
		return fmt.Sprintf("%d", year-1)
	}
	return fmt.Sprintf("%dQ%d", year-1, quarter)
}

func yoyAgainstPrior(values map[string]models.Cell, p string, cur float64) *float64 {
	prior := PriorLabel(p)
	if prior == "" {
		return nil
	}
	prev, ok := values[prior]
	if !ok || prev.Value == 0 {
		return nil
	}
	pct := math.Round((cur-prev.Value)/math.Abs(prev.Value)*100*100) / 100
	return &pct
}
