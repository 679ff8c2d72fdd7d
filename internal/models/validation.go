package models

// Severity classifies how serious a validation failure is.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// RuleKind tags the evaluation strategy of a validation rule.
type RuleKind string

const (
	RuleArithmetic RuleKind = "ARITHMETIC"
	RuleThreshold  RuleKind = "THRESHOLD"
	RuleSign       RuleKind = "SIGN"
)

// ValidationRule is the documentation form of a registry entry, as served
// by GET /rules. Kind-specific parameters are populated only for the
// matching kind.
type ValidationRule struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Kind        RuleKind   `json:"kind"`
	Severity    Severity   `json:"severity"`
	Description string     `json:"description"`
	Formula     string     `json:"formula,omitempty"`   // ARITHMETIC
	Threshold   float64    `json:"threshold,omitempty"` // THRESHOLD
	Field       RatioField `json:"field,omitempty"`     // THRESHOLD
	Fields      []string   `json:"fields,omitempty"`    // SIGN
}

// ValidationResult is one rule's verdict for one evaluation. Every run
// produces exactly one result per registry rule, in registry order.
type ValidationResult struct {
	RuleID   string   `json:"rule_id"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Passed   bool     `json:"passed"`
	Message  string   `json:"message"`
}
