package synthesis

import (
	"reflect"
	"testing"

	"finagentex/pkg/models"
)

func row(label, concept string, values map[string]float64) models.StatementRow {
	cells := make(map[string]models.Cell, len(values))
	for p, v := range values {
		cells[p] = models.Cell{Value: v}
	}
	return models.StatementRow{Label: label, Concept: concept, Values: cells}
}

func TestMergeRecencyBias(t *testing.T) {
	// Older filing reports 2022 and 2023; newer filing restates 2023 and adds
	// 2024, under a new display label for the same concept.
	older := []models.StatementRow{
		row("Net sales", "us-gaap_Revenues", map[string]float64{"2022": 100, "2023": 110}),
	}
	newer := []models.StatementRow{
		row("Total revenue", "us-gaap_Revenues", map[string]float64{"2023": 112, "2024": 130}),
	}

	out := Merge([][]models.StatementRow{older, newer})

	if len(out) != 1 {
		t.Fatalf("want 1 merged row, got %d", len(out))
	}
	got := out[0]
	// Newest filing's wording wins.
	if got.Label != "Total revenue" {
		t.Errorf("label: want newest wording, got %q", got.Label)
	}
	// 2023 overwritten by the restated value; 2022 preserved from the older filing.
	if got.Values["2023"].Value != 112 {
		t.Errorf("2023: want restated 112, got %v", got.Values["2023"].Value)
	}
	if got.Values["2022"].Value != 100 {
		t.Errorf("2022: older-only period must survive, got %v", got.Values["2022"].Value)
	}
	if got.Values["2024"].Value != 130 {
		t.Errorf("2024: want 130, got %v", got.Values["2024"].Value)
	}
}

func TestMergeKeyFallback(t *testing.T) {
	// Custom extension concepts are not stable; rows with them merge by label.
	a := []models.StatementRow{
		row("Membership fees", "aapl_MembershipFees", map[string]float64{"2023": 5}),
	}
	b := []models.StatementRow{
		row("Membership fees", "", map[string]float64{"2024": 6}),
	}
	out := Merge([][]models.StatementRow{a, b})
	if len(out) != 1 {
		t.Fatalf("label-keyed rows should merge, got %d rows", len(out))
	}
	// Concept from the earlier row survives a blank concept in the newer one.
	if out[0].Concept != "aapl_MembershipFees" {
		t.Errorf("concept dropped: %q", out[0].Concept)
	}

	// Distinct us-gaap concepts never merge even with identical labels.
	c := []models.StatementRow{
		row("Other", "us-gaap_OtherAssetsCurrent", map[string]float64{"2024": 1}),
		row("Other", "us-gaap_OtherLiabilitiesCurrent", map[string]float64{"2024": 2}),
	}
	out = Merge([][]models.StatementRow{c})
	if len(out) != 2 {
		t.Fatalf("concept-keyed rows must stay separate, got %d", len(out))
	}
}

func TestMergeIdempotence(t *testing.T) {
	a := []models.StatementRow{
		row("Net sales", "us-gaap_Revenues", map[string]float64{"2022": 100, "2023": 110}),
		row("Cost of sales", "us-gaap_CostOfRevenue", map[string]float64{"2022": 60}),
	}
	b := []models.StatementRow{
		row("Total revenue", "us-gaap_Revenues", map[string]float64{"2023": 112, "2024": 130}),
	}

	once := Merge([][]models.StatementRow{a, b})
	// Re-merging the merged result with a subset of its inputs is a no-op.
	twice := Merge([][]models.StatementRow{b, once})

	if !reflect.DeepEqual(rowsByKey(once), rowsByKey(twice)) {
		t.Errorf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func rowsByKey(rows []models.StatementRow) map[string]models.StatementRow {
	m := make(map[string]models.StatementRow, len(rows))
	for _, r := range rows {
		m[mergeKey(r)] = r
	}
	return m
}

func TestApplyYoY(t *testing.T) {
	rows := []models.StatementRow{
		row("Revenue", "us-gaap_Revenues", map[string]float64{"2023": 100, "2024": 150}),
	}
	ApplyYoY(rows)

	// (150-100)/|100|*100 = 50.0
	got := rows[0].Values["2024"].YoY
	if got == nil || *got != 50.0 {
		t.Errorf("2024 yoy: want 50.0, got %v", got)
	}
	// 2023 has no prior period.
	if rows[0].Values["2023"].YoY != nil {
		t.Error("2023 yoy: want nil with no prior year")
	}
}

func TestApplyYoYEdgeCases(t *testing.T) {
	// Single period: no comparison possible.
	rows := []models.StatementRow{
		row("Revenue", "us-gaap_Revenues", map[string]float64{"2024": 100}),
	}
	ApplyYoY(rows)
	if rows[0].Values["2024"].YoY != nil {
		t.Error("lone period must have nil yoy")
	}

	// Prior value exactly zero: nil, not a division blowup.
	rows = []models.StatementRow{
		row("Other income", "us-gaap_OtherIncome", map[string]float64{"2023": 0, "2024": 5}),
	}
	ApplyYoY(rows)
	if rows[0].Values["2024"].YoY != nil {
		t.Error("zero prior must yield nil yoy")
	}

	// Quarterly: compares against the same quarter one year earlier, and a
	// negative prior uses abs() in the denominator.
	rows = []models.StatementRow{
		row("Net income", "us-gaap_NetIncomeLoss", map[string]float64{
			"2023Q3": -40, "2024Q2": 999, "2024Q3": 20,
		}),
	}
	ApplyYoY(rows)
	// (20 - (-40)) / |-40| * 100 = 150.0
	got := rows[0].Values["2024Q3"].YoY
	if got == nil || *got != 150.0 {
		t.Errorf("2024Q3 yoy: want 150.0 vs 2023Q3, got %v", got)
	}
}

func TestPeriods(t *testing.T) {
	a := []models.StatementRow{row("A", "", map[string]float64{"2023Q4": 1, "2024Q1": 2})}
	b := []models.StatementRow{row("B", "", map[string]float64{"2024Q1": 3, "2024Q2": 4})}
	got := Periods(a, b)
	want := []string{"2024Q2", "2024Q1", "2023Q4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("periods: want %v, got %v", want, got)
	}
}
