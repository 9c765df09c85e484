// Package models defines the wire contract shared by the fundamentals core and
// its consumers (CLI, request handlers). The JSON field names match the
// frontend contract and must not change without coordinating both sides.
package models

// Granularity selects the reporting cadence of a fundamentals series.
type Granularity string

const (
	Annual    Granularity = "annual"
	Quarterly Granularity = "quarterly"
)

// Valid reports whether g is one of the two supported cadences.
func (g Granularity) Valid() bool {
	return g == Annual || g == Quarterly
}

// StatementType identifies one of the three core financial statements.
type StatementType string

const (
	Income   StatementType = "income"
	Balance  StatementType = "balance"
	Cashflow StatementType = "cashflow"
)

// StatementTypes lists all statement types in display order.
var StatementTypes = []StatementType{Income, Balance, Cashflow}

// Cell is a single reported value for one period, annotated with its
// year-over-year percentage change. YoY is nil when no prior-year comparison
// exists (first year of history, or prior value was exactly zero).
type Cell struct {
	Value float64  `json:"value"`
	YoY   *float64 `json:"yoy"`
}

// StatementRow is one line item of a canonical statement. Values is keyed by
// period label ("2024" or "2024Q3"); keys are unique per row.
type StatementRow struct {
	Label   string          `json:"label"`
	Concept string          `json:"concept,omitempty"`
	Values  map[string]Cell `json:"values"`
}

// Clone returns a deep copy of the row. Merging and standardization operate on
// copies so callers never see shared map state.
func (r StatementRow) Clone() StatementRow {
	out := StatementRow{Label: r.Label, Concept: r.Concept, Values: make(map[string]Cell, len(r.Values))}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}

// FundamentalsResponse is the assembled year-over-year-annotated time series
// for one (ticker, granularity). Periods is ordered most recent first.
type FundamentalsResponse struct {
	Success    bool           `json:"success"`
	Ticker     string         `json:"ticker"`
	PeriodType string         `json:"period_type"`
	Periods    []string       `json:"periods"`
	Income     []StatementRow `json:"income"`
	Balance    []StatementRow `json:"balance"`
	Cashflow   []StatementRow `json:"cashflow"`
	Error      string         `json:"error,omitempty"`
}

// Statement returns the row list for the given statement type.
func (r *FundamentalsResponse) Statement(st StatementType) []StatementRow {
	switch st {
	case Income:
		return r.Income
	case Balance:
		return r.Balance
	case Cashflow:
		return r.Cashflow
	}
	return nil
}

// SetStatement replaces the row list for the given statement type.
func (r *FundamentalsResponse) SetStatement(st StatementType, rows []StatementRow) {
	switch st {
	case Income:
		r.Income = rows
	case Balance:
		r.Balance = rows
	case Cashflow:
		r.Cashflow = rows
	}
}
