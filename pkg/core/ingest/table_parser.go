package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// R-file tables ("Financial Report" exhibits) carry the concept name inside
// the row anchor's onclick handler: showAR(this, 'defref_us-gaap_Assets', ...)
var defrefRe = regexp.MustCompile(`defref_([A-Za-z0-9_-]+)`)

// Duration header groups read "12 Months Ended", "3 Months Ended", etc.
var monthsEndedRe = regexp.MustCompile(`(\d+)\s+Months\s+Ended`)

// Footnote markers like "[1]" appended to cell text.
var footnoteRe = regexp.MustCompile(`\[\d+\]`)

// ParseStatementTable parses one statement R-file (HTML) into a
// StatementTable. Columns come from the header rows: duration statements
// group date columns under "N Months Ended" spans, giving each column a
// (start, end) pair; balance sheets list instant dates with no duration.
// Values are scaled to absolute dollars using the "$ in Millions/Thousands"
// declaration in the title cell; per-share rows are never scaled.
func ParseStatementTable(html string) (StatementTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return StatementTable{}, fmt.Errorf("failed to parse report html: %w", err)
	}

	table := doc.Find("table.report").First()
	if table.Length() == 0 {
		return StatementTable{}, fmt.Errorf("no report table in document")
	}

	var out StatementTable
	var monthGroups []int // months-ended value repeated once per column it spans
	monetaryScale := 1.0
	shareScale := 1.0

	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		ths := tr.Find("th")
		if ths.Length() > 0 {
			ths.Each(func(_ int, th *goquery.Selection) {
				text := cleanCellText(th.Text())
				if strings.Contains(text, "$ in Millions") {
					monetaryScale = 1e6
				} else if strings.Contains(text, "$ in Thousands") {
					monetaryScale = 1e3
				}
				if strings.Contains(text, "shares in Millions") {
					shareScale = 1e6
				} else if strings.Contains(text, "shares in Thousands") {
					shareScale = 1e3
				}

				if m := monthsEndedRe.FindStringSubmatch(text); m != nil {
					months, _ := strconv.Atoi(m[1])
					span := 1
					if cs, ok := th.Attr("colspan"); ok {
						if n, err := strconv.Atoi(cs); err == nil && n > 0 {
							span = n
						}
					}
					for i := 0; i < span; i++ {
						monthGroups = append(monthGroups, months)
					}
					return
				}

				if end, ok := parseHeaderDate(text); ok {
					col := PeriodColumn{EndDate: end}
					if idx := len(out.Columns); idx < len(monthGroups) {
						col.StartDate = end.AddDate(0, -monthGroups[idx], 0)
						col.HasDuration = true
					}
					out.Columns = append(out.Columns, col)
				}
			})
			return true
		}

		if len(out.Columns) == 0 {
			return true // still in preamble
		}

		labelCell := tr.Find("td.pl").First()
		if labelCell.Length() == 0 {
			return true
		}
		row := TableRow{Label: cleanCellText(labelCell.Text())}
		if onclick, ok := labelCell.Find("a").First().Attr("onclick"); ok {
			if m := defrefRe.FindStringSubmatch(onclick); m != nil {
				row.Concept = m[1]
			}
		}
		if row.Label == "" {
			return true
		}

		perShare := strings.Contains(row.Concept, "PerShare")
		shares := strings.Contains(row.Concept, "NumberOf") && strings.Contains(row.Concept, "Shares")

		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i == 0 { // label cell
				return
			}
			if len(row.Values) >= len(out.Columns) {
				return
			}
			v, ok := parseCellValue(td.Text())
			if !ok {
				row.Values = append(row.Values, nil)
				return
			}
			switch {
			case perShare:
				// EPS is stated in dollars regardless of the table scale.
			case shares:
				v *= shareScale
			default:
				v *= monetaryScale
			}
			row.Values = append(row.Values, &v)
		})
		// Abstract heading rows have no value cells at all; drop them here.
		for _, v := range row.Values {
			if v != nil {
				out.Rows = append(out.Rows, row)
				break
			}
		}
		return true
	})

	if len(out.Columns) == 0 {
		return StatementTable{}, fmt.Errorf("no period columns found in report table")
	}
	return out, nil
}

// parseHeaderDate parses EDGAR header dates like "Sep. 28, 2024" or
// "May 31, 2024".
func parseHeaderDate(text string) (time.Time, bool) {
	for _, layout := range []string{"Jan. 2, 2006", "Jan 2, 2006", "Jan. 02, 2006", "Jan 02, 2006"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseCellValue parses a display value: "$ 391,035", "(1,234)" (negative),
// "$ (0.45)", footnote markers stripped. Non-numeric cells report !ok.
func parseCellValue(text string) (float64, bool) {
	s := cleanCellText(text)
	s = footnoteRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.ReplaceAll(s, "$", ""))
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

func cleanCellText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
