// Package validate provides sanity checks over assembled fundamentals.
// These functions can be called from tests or CLI code to verify data
// integrity after merging; they report findings, they never mutate.
package validate

import (
	"fmt"
	"math"
	"strings"

	"finagentex/pkg/core/synthesis"
	"finagentex/pkg/models"
)

// Finding is one failed check, scoped to a period and line item.
type Finding struct {
	Period  string
	Label   string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s/%s: %s", f.Period, f.Label, f.Message)
}

// balanceTolerance allows for rounding introduced by report-level scaling
// (values filed in millions lose up to half a million per side).
const balanceTolerance = 0.005

// CheckBalanceSheet verifies Assets = Liabilities + Equity for every period
// where all three totals are present. Rows are matched by canonical label, so
// run the standardizer first.
func CheckBalanceSheet(rows []models.StatementRow, periods []string) []Finding {
	assets := findRow(rows, "Total Assets")
	liabilities := findRow(rows, "Total Liabilities")
	equity := findRow(rows, "Total Equity")
	if assets == nil || liabilities == nil || equity == nil {
		return nil
	}

	var findings []Finding
	for _, p := range periods {
		a, okA := assets.Values[p]
		l, okL := liabilities.Values[p]
		e, okE := equity.Values[p]
		if !okA || !okL || !okE {
			continue
		}
		diff := a.Value - (l.Value + e.Value)
		if relError(diff, a.Value) > balanceTolerance {
			findings = append(findings, Finding{
				Period: p,
				Label:  "Total Assets",
				Message: fmt.Sprintf("assets %.0f != liabilities %.0f + equity %.0f (diff %.0f)",
					a.Value, l.Value, e.Value, diff),
			})
		}
	}
	return findings
}

// CheckYoY recomputes every annotated year-over-year figure from the stored
// values and flags disagreements beyond rounding.
func CheckYoY(rows []models.StatementRow) []Finding {
	var findings []Finding
	for _, row := range rows {
		for p, cell := range row.Values {
			if cell.YoY == nil {
				continue
			}
			prev, ok := row.Values[synthesis.PriorLabel(p)]
			if !ok || prev.Value == 0 {
				findings = append(findings, Finding{
					Period:  p,
					Label:   row.Label,
					Message: "yoy annotated but prior period missing or zero",
				})
				continue
			}
			want := math.Round((cell.Value-prev.Value)/math.Abs(prev.Value)*100*100) / 100
			if math.Abs(want-*cell.YoY) > 0.01 {
				findings = append(findings, Finding{
					Period:  p,
					Label:   row.Label,
					Message: fmt.Sprintf("yoy %.2f does not match recomputed %.2f", *cell.YoY, want),
				})
			}
		}
	}
	return findings
}

// CheckResponse runs every applicable check over an assembled response.
func CheckResponse(resp *models.FundamentalsResponse) []Finding {
	if !resp.Success {
		return nil
	}
	findings := CheckBalanceSheet(resp.Balance, resp.Periods)
	for _, st := range models.StatementTypes {
		findings = append(findings, CheckYoY(resp.Statement(st))...)
	}
	return findings
}

func findRow(rows []models.StatementRow, label string) *models.StatementRow {
	for i := range rows {
		if strings.EqualFold(rows[i].Label, label) {
			return &rows[i]
		}
	}
	return nil
}

func relError(diff, base float64) float64 {
	if base == 0 {
		return math.Abs(diff)
	}
	return math.Abs(diff / base)
}
