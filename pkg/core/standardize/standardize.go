// Package standardize maps heterogeneous XBRL taxonomy concepts onto a small
// unified label vocabulary so statements from different companies (and
// different filing vintages of the same company) line up row for row.
//
// Resolution order: exact concept table first (O(1)), then the ordered fuzzy
// rule list. Rows matching neither keep their original label. Only the label
// is ever rewritten; values are untouched, which makes the pass idempotent.
package standardize

import (
	"fmt"
	"os"
	"strings"

	"finagentex/pkg/models"

	hjson "github.com/hjson/hjson-go/v4"
	"go.uber.org/zap"
)

// Standardizer rewrites statement row labels to the unified vocabulary.
// The zero value is not usable; call New.
type Standardizer struct {
	exact  map[string]string
	logger *zap.Logger
}

// New returns a Standardizer backed by the built-in concept table.
func New(logger *zap.Logger) *Standardizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	exact := make(map[string]string, len(conceptToLabel))
	for k, v := range conceptToLabel {
		exact[k] = v
	}
	return &Standardizer{exact: exact, logger: logger}
}

// LoadOverrides merges a user-supplied concept->label table over the built-in
// one. The file is HJSON so hand-curated tables can carry comments:
//
//	{
//	  // utility-specific revenue tag
//	  us-gaap_RegulatedOperatingRevenuePipelines: "Revenue"
//	}
func (s *Standardizer) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read overrides file: %w", err)
	}
	var table map[string]interface{}
	if err := hjson.Unmarshal(raw, &table); err != nil {
		return fmt.Errorf("failed to parse overrides file: %w", err)
	}
	n := 0
	for concept, label := range table {
		str, ok := label.(string)
		if !ok || str == "" {
			s.logger.Warn("skipping override with non-string label", zap.String("concept", concept))
			continue
		}
		s.exact[concept] = str
		n++
	}
	s.logger.Info("loaded concept overrides", zap.String("path", path), zap.Int("count", n))
	return nil
}

// Lookup resolves a single concept to its unified label. The boolean is false
// when no exact entry or fuzzy rule matches.
func (s *Standardizer) Lookup(concept string) (string, bool) {
	if concept == "" {
		return "", false
	}
	if label, ok := s.exact[concept]; ok {
		return label, true
	}
	c := normalize(concept)
	for _, rule := range fuzzyRules {
		if rule.match(c) {
			return rule.label, true
		}
	}
	return "", false
}

// Apply returns a copy of rows with labels rewritten where a mapping exists.
// Values and concepts are never modified.
func (s *Standardizer) Apply(rows []models.StatementRow) []models.StatementRow {
	if len(rows) == 0 {
		return rows
	}
	out := make([]models.StatementRow, 0, len(rows))
	for _, row := range rows {
		nr := row.Clone()
		if label, ok := s.Lookup(row.Concept); ok {
			nr.Label = label
		}
		out = append(out, nr)
	}
	return out
}

// ApplyResponse standardizes all three statements of a response in place.
func (s *Standardizer) ApplyResponse(resp *models.FundamentalsResponse) {
	if resp == nil || !resp.Success {
		return
	}
	for _, st := range models.StatementTypes {
		resp.SetStatement(st, s.Apply(resp.Statement(st)))
	}
}

// normalize lower-cases and strips the separators that vary between taxonomy
// spellings ("us-gaap_NetIncomeLoss" -> "usgaapnetincomeloss").
func normalize(concept string) string {
	c := strings.ToLower(concept)
	c = strings.ReplaceAll(c, "-", "")
	c = strings.ReplaceAll(c, "_", "")
	return c
}
