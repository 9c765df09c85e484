package standardize

import (
	"os"
	"path/filepath"
	"testing"

	"finagentex/pkg/models"
)

func TestExactLookup(t *testing.T) {
	s := New(nil)

	label, ok := s.Lookup("us-gaap_NetIncomeLoss")
	if !ok || label != "Net Income" {
		t.Errorf("us-gaap_NetIncomeLoss: want Net Income, got %q (ok=%v)", label, ok)
	}
	label, ok = s.Lookup("us-gaap_Revenues")
	if !ok || label != "Revenue" {
		t.Errorf("us-gaap_Revenues: want Revenue, got %q", label)
	}
	if _, ok := s.Lookup(""); ok {
		t.Error("empty concept must not match")
	}
}

func TestFuzzyRuleOrdering(t *testing.T) {
	s := New(nil)

	// "CostOfRevenue" contains the substring "revenue"; the cost rule must win
	// because it is evaluated first.
	label, ok := s.Lookup("custom_CostOfRevenueAmortization")
	if !ok || label != "Cost of Revenue" {
		t.Errorf("CostOfRevenue variant: want Cost of Revenue, got %q", label)
	}

	// A plain revenue variant still reaches the generic rule.
	label, ok = s.Lookup("custom_SubscriptionRevenueNet")
	if !ok || label != "Revenue" {
		t.Errorf("revenue variant: want Revenue, got %q", label)
	}

	// DeferredRevenue is excluded from the generic revenue rule.
	if label, ok = s.Lookup("custom_DeferredRevenueArrangement"); ok && label == "Revenue" {
		t.Errorf("deferred revenue must not map to Revenue, got %q", label)
	}

	// Interest expense vs income disambiguation.
	label, _ = s.Lookup("custom_InterestExpenseSubordinatedNotes")
	if label != "Interest Expense" {
		t.Errorf("want Interest Expense, got %q", label)
	}
}

func TestApplyMutatesOnlyLabels(t *testing.T) {
	s := New(nil)
	rows := []models.StatementRow{
		{
			Label:   "Total net sales",
			Concept: "us-gaap_RevenueFromContractWithCustomerExcludingAssessedTax",
			Values:  map[string]models.Cell{"2024": {Value: 391035}},
		},
		{
			Label:   "Some custom item",
			Concept: "aapl_CustomThing",
			Values:  map[string]models.Cell{"2024": {Value: 1}},
		},
	}

	out := s.Apply(rows)

	if out[0].Label != "Revenue" {
		t.Errorf("want Revenue, got %q", out[0].Label)
	}
	if out[0].Concept != rows[0].Concept {
		t.Error("concept must not be rewritten")
	}
	if out[0].Values["2024"].Value != 391035 {
		t.Error("values must not be touched")
	}
	// Unmatched rows keep their original label.
	if out[1].Label != "Some custom item" {
		t.Errorf("unmatched row label changed to %q", out[1].Label)
	}
	// Input rows untouched (Apply copies).
	if rows[0].Label != "Total net sales" {
		t.Error("Apply must not mutate its input")
	}

	// Idempotence: a second pass is a no-op.
	again := s.Apply(out)
	if again[0].Label != out[0].Label || again[1].Label != out[1].Label {
		t.Error("second standardization pass changed labels")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.hjson")
	content := `{
  // pipeline operators tag revenue with this
  custom_PipelineTransportRevenue: "Revenue"
  custom_WeirdTag: "Net Income"
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(nil)
	if err := s.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	label, ok := s.Lookup("custom_PipelineTransportRevenue")
	if !ok || label != "Revenue" {
		t.Errorf("override lookup: want Revenue, got %q (ok=%v)", label, ok)
	}
	label, _ = s.Lookup("custom_WeirdTag")
	if label != "Net Income" {
		t.Errorf("override lookup: want Net Income, got %q", label)
	}

	if err := s.LoadOverrides(filepath.Join(dir, "missing.hjson")); err == nil {
		t.Error("missing file should error")
	}
}
