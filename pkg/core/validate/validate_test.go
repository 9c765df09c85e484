package validate

import (
	"strings"
	"testing"

	"finagentex/pkg/models"
)

func yoy(v float64) *float64 { return &v }

func balanceRows(equity2023 float64) []models.StatementRow {
	return []models.StatementRow{
		{Label: "Total Assets", Values: map[string]models.Cell{
			"2024": {Value: 364980}, "2023": {Value: 352583},
		}},
		{Label: "Total Liabilities", Values: map[string]models.Cell{
			"2024": {Value: 308030}, "2023": {Value: 290437},
		}},
		{Label: "Total Equity", Values: map[string]models.Cell{
			"2024": {Value: 56950}, "2023": {Value: equity2023},
		}},
	}
}

func TestCheckBalanceSheet(t *testing.T) {
	periods := []string{"2024", "2023"}

	if f := CheckBalanceSheet(balanceRows(62146), periods); len(f) != 0 {
		t.Errorf("clean sheet flagged: %v", f)
	}

	// 2023 equity off by ~3%: 352583 != 290437 + 50000.
	findings := CheckBalanceSheet(balanceRows(50000), periods)
	if len(findings) != 1 || findings[0].Period != "2023" {
		t.Fatalf("broken sheet: got %v", findings)
	}
	if !strings.Contains(findings[0].Message, "diff") {
		t.Errorf("message lacks diff: %s", findings[0].Message)
	}

	// Missing totals mean no verdict, not a finding.
	if f := CheckBalanceSheet(balanceRows(50000)[:2], periods); f != nil {
		t.Errorf("incomplete sheet flagged: %v", f)
	}
}

func TestCheckYoY(t *testing.T) {
	rows := []models.StatementRow{
		{Label: "Revenue", Values: map[string]models.Cell{
			"2024": {Value: 150, YoY: yoy(50.0)},
			"2023": {Value: 100},
		}},
	}
	if f := CheckYoY(rows); len(f) != 0 {
		t.Errorf("correct yoy flagged: %v", f)
	}

	rows[0].Values["2024"] = models.Cell{Value: 150, YoY: yoy(40.0)}
	if f := CheckYoY(rows); len(f) != 1 || !strings.Contains(f[0].Message, "recomputed 50.00") {
		t.Errorf("wrong yoy not flagged: %v", f)
	}

	// Annotation without a prior period is itself a defect.
	orphan := []models.StatementRow{
		{Label: "Revenue", Values: map[string]models.Cell{
			"2024Q1": {Value: 150, YoY: yoy(50.0)},
		}},
	}
	if f := CheckYoY(orphan); len(f) != 1 {
		t.Errorf("orphan yoy not flagged: %v", f)
	}
}

func TestCheckResponseSkipsFailures(t *testing.T) {
	resp := &models.FundamentalsResponse{Success: false, Error: "fetch failed"}
	if f := CheckResponse(resp); f != nil {
		t.Errorf("failed response checked: %v", f)
	}
}
