// Package report renders assembled fundamentals as Markdown tables, with an
// optional HTML export for embedding in dashboards.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"finagentex/pkg/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var statementTitles = map[models.StatementType]string{
	models.Income:   "Income Statement",
	models.Balance:  "Balance Sheet",
	models.Cashflow: "Cash Flow Statement",
}

// Markdown renders the full response: one heading and pipe table per
// statement, periods as columns newest first, YoY shown next to each value
// when available.
func Markdown(resp *models.FundamentalsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Fundamentals (%s)\n\n", resp.Ticker, resp.PeriodType)
	if !resp.Success {
		fmt.Fprintf(&b, "Fetch failed: %s\n", resp.Error)
		return b.String()
	}
	if len(resp.Periods) == 0 {
		note := resp.Error
		if note == "" {
			note = "no data available"
		}
		fmt.Fprintf(&b, "%s\n", note)
		return b.String()
	}

	for _, st := range models.StatementTypes {
		rows := resp.Statement(st)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", statementTitles[st])
		writeTable(&b, rows, resp.Periods)
		b.WriteString("\n")
	}
	return b.String()
}

func writeTable(b *strings.Builder, rows []models.StatementRow, periods []string) {
	b.WriteString("| Line Item |")
	for _, p := range periods {
		fmt.Fprintf(b, " %s |", p)
	}
	b.WriteString("\n|---|")
	for range periods {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, row := range rows {
		// Pipes inside labels would break the table grammar.
		fmt.Fprintf(b, "| %s |", strings.ReplaceAll(row.Label, "|", "/"))
		for _, p := range periods {
			cell, ok := row.Values[p]
			if !ok {
				b.WriteString(" — |")
				continue
			}
			fmt.Fprintf(b, " %s |", formatCell(cell))
		}
		b.WriteString("\n")
	}
}

func formatCell(c models.Cell) string {
	v := formatNumber(c.Value)
	if c.YoY == nil {
		return v
	}
	return fmt.Sprintf("%s (%+.2f%%)", v, *c.YoY)
}

// formatNumber keeps integers clean and trims trailing zeros on everything
// else, so per-share figures stay readable next to billion-scale line items.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// HTML converts the Markdown rendering to HTML. The table extension is
// required: pipe tables are GFM, not CommonMark.
func HTML(resp *models.FundamentalsResponse) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(resp)), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return buf.String(), nil
}

// ValidateMarkdown checks that the string parses as Markdown. Goldmark is very
// permissive, so this catches only gross corruption.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	return parser.Parse(text.NewReader([]byte(input))) != nil
}
