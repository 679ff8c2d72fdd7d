package engine

import "github.com/finreg/corep/internal/models"

// RuleRegistry is an ordered, immutable list of validation rules. Like the
// schema registry it is built once and passed into the engine's entry
// points by reference.
type RuleRegistry struct {
	rules []Rule
}

// NewRuleRegistry builds a registry around an explicit rule list.
func NewRuleRegistry(rules ...Rule) *RuleRegistry {
	return &RuleRegistry{rules: rules}
}

// Len returns the number of registered rules.
func (r *RuleRegistry) Len() int {
	return len(r.rules)
}

// Describe returns the documentation form of every rule, in order.
func (r *RuleRegistry) Describe() []models.ValidationRule {
	out := make([]models.ValidationRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule.Describe())
	}
	return out
}

// Evaluate runs every rule against one submission's values, totals and
// ratios. The result set always contains one entry per rule, in registry
// order; no rule is ever skipped and no rule mutates its inputs.
func (r *RuleRegistry) Evaluate(values ValueMap, totals models.Totals, ratios *models.Ratios) []models.ValidationResult {
	results := make([]models.ValidationResult, 0, len(r.rules))
	for _, rule := range r.rules {
		results = append(results, rule.evaluate(values, totals, ratios))
	}
	return results
}
