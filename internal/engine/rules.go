package engine

import (
	"fmt"

	"github.com/finreg/corep/internal/models"
)

// Rule is one validation check. The set of implementations is closed:
// thresholdRule, signRule and arithmeticRule, each with its own evaluate
// method, so dispatch never inspects a kind tag at runtime.
type Rule interface {
	Describe() models.ValidationRule
	evaluate(values ValueMap, totals models.Totals, ratios *models.Ratios) models.ValidationResult
}

type ruleMeta struct {
	id          string
	name        string
	severity    models.Severity
	description string
}

func (m ruleMeta) result(passed bool, message string) models.ValidationResult {
	return models.ValidationResult{
		RuleID:   m.id,
		Name:     m.name,
		Severity: m.severity,
		Passed:   passed,
		Message:  message,
	}
}

// thresholdRule passes iff the referenced ratio meets a minimum. A missing
// ratio set reads as zero, so minimum-ratio rules fail when no denominator
// was available.
type thresholdRule struct {
	ruleMeta
	field     models.RatioField
	threshold float64
}

func (r thresholdRule) Describe() models.ValidationRule {
	return models.ValidationRule{
		ID: r.id, Name: r.name, Kind: models.RuleThreshold, Severity: r.severity,
		Description: r.description, Threshold: r.threshold, Field: r.field,
	}
}

func (r thresholdRule) evaluate(_ ValueMap, _ models.Totals, ratios *models.Ratios) models.ValidationResult {
	value := ratios.Field(r.field)
	if value < r.threshold {
		return r.result(false, fmt.Sprintf("%s is %.2f%% (minimum: %.2f%%)", r.field, value, r.threshold))
	}
	return r.result(true, fmt.Sprintf("Passed: %.2f%% >= %.2f%%", value, r.threshold))
}

// signRule fails on the first listed field with a negative supplied value.
// Absent fields read as zero and never fail.
type signRule struct {
	ruleMeta
	fields []string
}

func (r signRule) Describe() models.ValidationRule {
	return models.ValidationRule{
		ID: r.id, Name: r.name, Kind: models.RuleSign, Severity: r.severity,
		Description: r.description, Fields: r.fields,
	}
}

func (r signRule) evaluate(values ValueMap, _ models.Totals, _ *models.Ratios) models.ValidationResult {
	for _, field := range r.fields {
		if v := values.Get(field); v < 0 {
			return r.result(false, fmt.Sprintf("Field %s has negative value: %.2f", field, v))
		}
	}
	return r.result(true, "All sign validations passed")
}

// arithmeticRule cross-checks a supplied computed-total row against the
// engine's own roll-up. The totals calculator enforces these identities by
// construction, so the rule only has something to verify when the reporter
// also supplied the total row; rules bound to the other template kind pass
// as not applicable.
type arithmeticRule struct {
	ruleMeta
	formula  string
	totalRow string
	label    string
	computed func(totals models.Totals) (float64, bool)
}

// arithmeticTolerance is equality at the two-decimal reporting grain.
const arithmeticTolerance = 0.005

func (r arithmeticRule) Describe() models.ValidationRule {
	return models.ValidationRule{
		ID: r.id, Name: r.name, Kind: models.RuleArithmetic, Severity: r.severity,
		Description: r.description, Formula: r.formula,
	}
}

func (r arithmeticRule) evaluate(values ValueMap, totals models.Totals, _ *models.Ratios) models.ValidationResult {
	expected, ok := r.computed(totals)
	if !ok || !values.Has(r.totalRow) {
		return r.result(true, "Arithmetic check passed")
	}
	reported := values.Get(r.totalRow)
	diff := reported - expected
	if diff < -arithmeticTolerance || diff > arithmeticTolerance {
		return r.result(false, fmt.Sprintf("row_%s reported as %.2f but computed %s is %.2f", r.totalRow, reported, r.label, expected))
	}
	return r.result(true, fmt.Sprintf("Passed: row_%s = %.2f matches computed %s", r.totalRow, reported, r.label))
}

func ca1Total(pick func(models.CA1Totals) float64) func(models.Totals) (float64, bool) {
	return func(totals models.Totals) (float64, bool) {
		t, ok := totals.(models.CA1Totals)
		if !ok {
			return 0, false
		}
		return pick(t), true
	}
}

func ca2Total(pick func(models.CA2Totals) float64) func(models.Totals) (float64, bool) {
	return func(totals models.Totals) (float64, bool) {
		t, ok := totals.(models.CA2Totals)
		if !ok {
			return 0, false
		}
		return pick(t), true
	}
}

// DefaultRules builds the standard COREP validation battery, in evaluation
// order. The order is fixed so result sets stay diffable run to run.
func DefaultRules() *RuleRegistry {
	return NewRuleRegistry(
		arithmeticRule{
			ruleMeta: ruleMeta{id: "VAL_001", name: "CET1 total calculation", severity: models.SeverityError,
				description: "CET1 capital must equal sum of CET1 items minus deductions"},
			formula:  "row_200 = row_010 + row_020 + row_030 + row_040 + row_050 + row_060 + row_070 - row_080 - row_090 - row_100 - row_110 - row_120 + row_130",
			totalRow: "200", label: "CET1",
			computed: ca1Total(func(t models.CA1Totals) float64 { return t.CET1 }),
		},
		arithmeticRule{
			ruleMeta: ruleMeta{id: "VAL_002", name: "Tier 1 total calculation", severity: models.SeverityError,
				description: "Tier 1 capital must equal CET1 plus AT1"},
			formula:  "row_500 = row_200 + row_400",
			totalRow: "500", label: "Tier 1",
			computed: ca1Total(func(t models.CA1Totals) float64 { return t.Tier1 }),
		},
		arithmeticRule{
			ruleMeta: ruleMeta{id: "VAL_003", name: "Total own funds calculation", severity: models.SeverityError,
				description: "Total own funds must equal Tier 1 plus Tier 2"},
			formula:  "row_800 = row_500 + row_700",
			totalRow: "800", label: "total own funds",
			computed: ca1Total(func(t models.CA1Totals) float64 { return t.TotalOwnFunds }),
		},
		thresholdRule{
			ruleMeta: ruleMeta{id: "VAL_004", name: "Minimum CET1 ratio", severity: models.SeverityError,
				description: "CET1 ratio must be at least 4.5%"},
			field: models.RatioCET1, threshold: 4.5,
		},
		thresholdRule{
			ruleMeta: ruleMeta{id: "VAL_005", name: "Minimum Tier 1 ratio", severity: models.SeverityError,
				description: "Tier 1 ratio must be at least 6.0%"},
			field: models.RatioTier1, threshold: 6.0,
		},
		thresholdRule{
			ruleMeta: ruleMeta{id: "VAL_006", name: "Minimum total capital ratio", severity: models.SeverityError,
				description: "Total capital ratio must be at least 8.0%"},
			field: models.RatioTotalCapital, threshold: 8.0,
		},
		signRule{
			ruleMeta: ruleMeta{id: "VAL_007", name: "Non-negative capital instruments", severity: models.SeverityError,
				description: "Capital instruments (rows 010, 300, 600) must be non-negative"},
			fields: []string{"row_010", "row_300", "row_600"},
		},
		signRule{
			ruleMeta: ruleMeta{id: "VAL_008", name: "Deductions as positive values", severity: models.SeverityWarning,
				description: "Deduction items should be reported as positive values (they will be subtracted)"},
			fields: []string{"row_080", "row_090", "row_100", "row_110", "row_120", "row_320", "row_630"},
		},
		thresholdRule{
			ruleMeta: ruleMeta{id: "VAL_009", name: "Capital conservation buffer", severity: models.SeverityWarning,
				description: "CET1 ratio should exceed 7.0% to meet CCB requirement (4.5% + 2.5%)"},
			field: models.RatioCET1, threshold: 7.0,
		},
		arithmeticRule{
			ruleMeta: ruleMeta{id: "VAL_010", name: "RWA consistency", severity: models.SeverityError,
				description: "Total RWA must equal sum of risk category RWAs"},
			formula:  "ca2_row_500 = ca2_row_050 + ca2_row_150 + ca2_row_200 + ca2_row_300",
			totalRow: "500", label: "total RWA",
			computed: ca2Total(func(t models.CA2Totals) float64 { return t.TotalRWA }),
		},
	)
}
