// Package synthesis folds per-filing statement rows from overlapping filings
// into one deduplicated canonical row set, then annotates it with
// year-over-year deltas.
//
// The merge prioritizes:
//  1. Recency bias: for the same line item, values from the latest filing win.
//  2. History preservation: periods reported only by older filings survive.
//  3. Stable identity: rows are keyed by XBRL concept when it carries a
//     recognized taxonomy prefix, so a company renaming a display label across
//     years still merges into one row. Label-only rows fall back to label text.
package synthesis

import (
	"sort"
	"strings"

	"finagentex/pkg/core/period"
	"finagentex/pkg/models"
)

// taxonomy prefixes that make a concept trustworthy as a merge key. Custom
// extension concepts (e.g. "aapl_...") are company-private and no more stable
// than the display label.
var taxonomyPrefixes = []string{"us-gaap", "ifrs"}

// mergeKey picks the identity of a row for deduplication.
func mergeKey(row models.StatementRow) string {
	for _, p := range taxonomyPrefixes {
		if strings.HasPrefix(row.Concept, p) {
			return row.Concept
		}
	}
	return row.Label
}

// Merge folds row chunks from multiple filings into one canonical row set.
// Chunks MUST be ordered oldest filing first: later chunks overwrite
// overlapping period values and take over the display label, while periods
// present only in earlier chunks are preserved.
//
// Merging is idempotent: re-merging an already-merged result with any subset
// of its inputs yields the same canonical set.
func Merge(chunks [][]models.StatementRow) []models.StatementRow {
	merged := make(map[string]*models.StatementRow)
	var order []string

	for _, chunk := range chunks {
		for _, row := range chunk {
			key := mergeKey(row)
			existing, ok := merged[key]
			if !ok {
				clone := row.Clone()
				merged[key] = &clone
				order = append(order, key)
				continue
			}
			// Newer filing wins on wording and overlapping values.
			existing.Label = row.Label
			if row.Concept != "" {
				existing.Concept = row.Concept
			}
			for p, cell := range row.Values {
				existing.Values[p] = cell
			}
		}
	}

	out := make([]models.StatementRow, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	return out
}

// Periods collects the distinct period labels across rows, most recent first.
func Periods(rowSets ...[]models.StatementRow) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, rows := range rowSets {
		for _, row := range rows {
			for p := range row.Values {
				if !seen[p] {
					seen[p] = true
					labels = append(labels, p)
				}
			}
		}
	}
	period.SortDesc(labels)
	return labels
}

// sortedPeriodsOf returns a row's own period labels, most recent first.
func sortedPeriodsOf(row models.StatementRow) []string {
	labels := make([]string, 0, len(row.Values))
	for p := range row.Values {
		labels = append(labels, p)
	}
	sort.Slice(labels, func(i, j int) bool {
		yi, qi := period.SortKey(labels[i])
		yj, qj := period.SortKey(labels[j])
		if yi != yj {
			return yi > yj
		}
		return qi > qj
	})
	return labels
}
