package store

import (
	"encoding/json"
	"testing"

	"finagentex/pkg/models"
)

func TestRowsToPeriodDocsRoundTrip(t *testing.T) {
	yoy := 12.5
	rows := []models.StatementRow{
		{
			Label:   "Revenue",
			Concept: "us-gaap_Revenues",
			Values: map[string]models.Cell{
				"2024": {Value: 150, YoY: &yoy},
				"2023": {Value: 100},
			},
		},
		{
			Label:  "Custom item",
			Values: map[string]models.Cell{"2024": {Value: 7}},
		},
	}

	docs, err := RowsToPeriodDocs(rows)
	if err != nil {
		t.Fatalf("RowsToPeriodDocs: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("want docs for 2 periods, got %d", len(docs))
	}

	// Each doc is {label: {value, yoy, concept}}.
	var doc2024 map[string]cellDoc
	if err := json.Unmarshal(docs["2024"], &doc2024); err != nil {
		t.Fatalf("unmarshal 2024 doc: %v", err)
	}
	if doc2024["Revenue"].Value != 150 || doc2024["Revenue"].Concept != "us-gaap_Revenues" {
		t.Errorf("2024 revenue doc wrong: %+v", doc2024["Revenue"])
	}
	if doc2024["Revenue"].YoY == nil || *doc2024["Revenue"].YoY != 12.5 {
		t.Errorf("yoy lost in pivot: %+v", doc2024["Revenue"])
	}

	// Round trip back to rows.
	raw := make(map[string]json.RawMessage, len(docs))
	for p, d := range docs {
		raw[p] = json.RawMessage(d)
	}
	back, err := DocsToRows(raw)
	if err != nil {
		t.Fatalf("DocsToRows: %v", err)
	}
	byLabel := make(map[string]models.StatementRow)
	for _, r := range back {
		byLabel[r.Label] = r
	}
	rev, ok := byLabel["Revenue"]
	if !ok {
		t.Fatal("Revenue row lost in round trip")
	}
	if rev.Concept != "us-gaap_Revenues" {
		t.Errorf("concept not restored: %q", rev.Concept)
	}
	if rev.Values["2023"].Value != 100 || rev.Values["2024"].Value != 150 {
		t.Errorf("values not restored: %+v", rev.Values)
	}
	if rev.Values["2024"].YoY == nil || *rev.Values["2024"].YoY != 12.5 {
		t.Error("yoy not restored")
	}
	if byLabel["Custom item"].Concept != "" {
		t.Error("concept invented for concept-less row")
	}
}

func TestDocsToRowsBadJSON(t *testing.T) {
	_, err := DocsToRows(map[string]json.RawMessage{"2024": json.RawMessage(`{broken`)})
	if err == nil {
		t.Error("corrupt doc must error, not be repaired silently")
	}
}
