// Package ingest provides SEC EDGAR API integration: listing a company's
// filings and extracting the raw financial-statement tables from each one.
// API Documentation: https://www.sec.gov/developer
package ingest

import (
	"context"
	"errors"
	"time"

	"finagentex/pkg/models"
)

// ErrNoFilings reports that a ticker resolved but has no filings of the
// requested form. Callers treat it as an empty result, not a failure.
var ErrNoFilings = errors.New("no filings found")

// FilingSource retrieves raw statement tables for a company. The pipeline
// treats it as a black box; implementations may hit live SEC EDGAR or serve
// fixtures in tests.
type FilingSource interface {
	// GetFilings returns up to max filings, newest first. Annual granularity
	// fetches 10-K filings only; quarterly fetches both 10-K and 10-Q so
	// fourth-quarter columns embedded in annual reports are not lost.
	GetFilings(ctx context.Context, ticker string, g models.Granularity, max int) ([]Filing, error)
}

// Filing is one regulatory submission with its extracted statement tables.
// Raw filings are not retained after processing; only the canonical statement
// rows built from them survive.
type Filing struct {
	AccessionNumber string
	Form            string
	FilingDate      time.Time
	Statements      map[models.StatementType]StatementTable
}

// StatementTable is one raw statement as filed: columns are period end dates
// (with duration metadata when the report declares it) and rows are line
// items with one value slot per column.
type StatementTable struct {
	Columns []PeriodColumn
	Rows    []TableRow
}

// PeriodColumn describes one reporting column. HasDuration is false for
// instant (balance-sheet) columns, where only EndDate is meaningful.
type PeriodColumn struct {
	EndDate     time.Time
	StartDate   time.Time
	HasDuration bool
}

// TableRow is one raw line item. Values is indexed by column; nil marks an
// empty cell.
type TableRow struct {
	Label   string
	Concept string
	Values  []*float64
}
