package report

import (
	"strings"
	"testing"

	"finagentex/pkg/models"
)

func sample() *models.FundamentalsResponse {
	yoy := 3.36
	return &models.FundamentalsResponse{
		Success:    true,
		Ticker:     "AAPL",
		PeriodType: "annual",
		Periods:    []string{"2024", "2023"},
		Income: []models.StatementRow{
			{Label: "Revenue", Values: map[string]models.Cell{
				"2024": {Value: 391035000000, YoY: &yoy},
				"2023": {Value: 383285000000},
			}},
			{Label: "Diluted EPS", Values: map[string]models.Cell{
				"2024": {Value: 6.11},
			}},
		},
	}
}

func TestMarkdownTable(t *testing.T) {
	md := Markdown(sample())

	if !strings.Contains(md, "# AAPL Fundamentals (annual)") {
		t.Errorf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "| Line Item | 2024 | 2023 |") {
		t.Errorf("missing header row:\n%s", md)
	}
	if !strings.Contains(md, "391035000000 (+3.36%)") {
		t.Errorf("yoy not rendered:\n%s", md)
	}
	// Missing 2023 EPS renders as a dash, and 6.11 stays fractional.
	if !strings.Contains(md, "| Diluted EPS | 6.11 | — |") {
		t.Errorf("eps row wrong:\n%s", md)
	}
	// Empty statements are omitted entirely.
	if strings.Contains(md, "Balance Sheet") {
		t.Errorf("empty statement rendered:\n%s", md)
	}
}

func TestMarkdownFailure(t *testing.T) {
	resp := &models.FundamentalsResponse{Ticker: "XXXX", PeriodType: "annual", Error: "failed to fetch filings"}
	md := Markdown(resp)
	if !strings.Contains(md, "Fetch failed: failed to fetch filings") {
		t.Errorf("failure not reported:\n%s", md)
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown(Markdown(sample())) {
		t.Error("rendered report must be valid markdown")
	}
}

func TestHTMLRendersTable(t *testing.T) {
	html, err := HTML(sample())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<table>") || !strings.Contains(html, "<td>391035000000 (+3.36%)</td>") {
		t.Errorf("pipe table not converted:\n%s", html)
	}
}
