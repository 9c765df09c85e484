// Package store persists computed fundamentals periods durably, keyed by
// (ticker, period_type, period, statement_type). Two backends share one
// schema: Postgres for deployments with a DATABASE_URL, SQLite for local use.
// Entries never expire; a refetch overwrites them.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"finagentex/pkg/core/period"
	"finagentex/pkg/models"
)

// Store is the durable cache tier. Implementations must make Put a
// keyed upsert: concurrent writers on different composite keys are safe, and
// two writers racing the same key are last-write-wins.
type Store interface {
	// Put upserts the JSON document for one (period, statement type) cell.
	Put(ctx context.Context, ticker string, g models.Granularity, periodLabel string, st models.StatementType, doc []byte) error
	// ListPeriods returns the distinct cached period labels, most recent first.
	ListPeriods(ctx context.Context, ticker string, g models.Granularity) ([]string, error)
	// GetAll returns every cached document grouped by statement type and period.
	GetAll(ctx context.Context, ticker string, g models.Granularity) (map[models.StatementType]map[string]json.RawMessage, error)
	// Clear removes all cached rows, or only one ticker's when ticker != "".
	Clear(ctx context.Context, ticker string) error
	// Stats reports row and distinct-ticker counts.
	Stats(ctx context.Context) (rows int64, tickers int64, err error)
}

// cellDoc is the persisted per-label value object. Concept rides along inside
// the value object so reconstruction can restore row identity.
type cellDoc struct {
	Value   float64  `json:"value"`
	YoY     *float64 `json:"yoy"`
	Concept string   `json:"concept,omitempty"`
}

// RowsToPeriodDocs pivots canonical rows into one JSON document per period:
// {label: {value, yoy, concept}}. Periods with no data are omitted.
func RowsToPeriodDocs(rows []models.StatementRow) (map[string][]byte, error) {
	byPeriod := make(map[string]map[string]cellDoc)
	for _, row := range rows {
		for p, cell := range row.Values {
			if byPeriod[p] == nil {
				byPeriod[p] = make(map[string]cellDoc)
			}
			byPeriod[p][row.Label] = cellDoc{Value: cell.Value, YoY: cell.YoY, Concept: row.Concept}
		}
	}
	out := make(map[string][]byte, len(byPeriod))
	for p, doc := range byPeriod {
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal period doc %s: %w", p, err)
		}
		out[p] = raw
	}
	return out, nil
}

// DocsToRows is the inverse pivot: per-period documents back into canonical
// rows, one per label, with concepts restored.
func DocsToRows(docs map[string]json.RawMessage) ([]models.StatementRow, error) {
	byLabel := make(map[string]*models.StatementRow)
	var order []string

	// Deterministic assembly: walk periods newest first.
	labels := make([]string, 0, len(docs))
	for p := range docs {
		labels = append(labels, p)
	}
	period.SortDesc(labels)

	for _, p := range labels {
		var doc map[string]cellDoc
		if err := json.Unmarshal(docs[p], &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal period doc %s: %w", p, err)
		}
		for label, cell := range doc {
			row, ok := byLabel[label]
			if !ok {
				row = &models.StatementRow{Label: label, Values: make(map[string]models.Cell)}
				byLabel[label] = row
				order = append(order, label)
			}
			if row.Concept == "" {
				row.Concept = cell.Concept
			}
			row.Values[p] = models.Cell{Value: cell.Value, YoY: cell.YoY}
		}
	}

	out := make([]models.StatementRow, 0, len(order))
	for _, label := range order {
		out = append(out, *byLabel[label])
	}
	return out, nil
}
