package models

import (
	"time"
)

// EvaluateRequest represents the request body for evaluating a submission.
// Values is a sparse map from row identifier ("010" or "row_010") to a
// numeric value; "rwa"/"total_rwa" supply the ratio denominator for CA1.
// Values are decoded as any so the engine can reject non-numeric entries
// explicitly instead of masking them as zero.
type EvaluateRequest struct {
	Template string         `json:"template" binding:"required"`
	Values   map[string]any `json:"values" binding:"required"`
}

// TemplateField is one schema row paired with its supplied value, if any.
// Computed-total rows are reported through Totals, not here.
type TemplateField struct {
	RowID    string   `json:"row_id"`
	Label    string   `json:"label"`
	Value    *float64 `json:"value,omitempty"`
	Category string   `json:"category"`
	Sign     RowSign  `json:"sign"`
	IsTotal  bool     `json:"is_total,omitempty"`
}

// EvaluationReport is the full outcome of evaluating one submission.
type EvaluationReport struct {
	TemplateID        string             `json:"template_id"`
	TemplateName      string             `json:"template_name"`
	Fields            []TemplateField    `json:"fields"`
	Totals            Totals             `json:"totals"`
	Ratios            *Ratios            `json:"ratios,omitempty"`
	ValidationResults []ValidationResult `json:"validation_results"`
	Warnings          []Warning          `json:"warnings,omitempty"`
	Timestamp         time.Time          `json:"timestamp"`
}

// BatchEvaluateRequest evaluates several independent submissions in one call.
type BatchEvaluateRequest struct {
	Submissions []EvaluateRequest `json:"submissions" binding:"required"`
}

// BatchEvaluateItem is one submission's outcome, in request order. Exactly
// one of Report or Error is set.
type BatchEvaluateItem struct {
	Index  int               `json:"index"`
	Report *EvaluationReport `json:"report,omitempty"`
	Error  *ErrorResponse    `json:"error,omitempty"`
}

// BatchEvaluateResponse wraps the per-submission outcomes.
type BatchEvaluateResponse struct {
	Results []BatchEvaluateItem `json:"results"`
}

// CreateFilingRequest represents the request body for persisting a filing.
type CreateFilingRequest struct {
	Reference string         `json:"reference" binding:"required"`
	Template  string         `json:"template" binding:"required"`
	Values    map[string]any `json:"values" binding:"required"`
}

// TemplateListItem summarizes one supported template.
type TemplateListItem struct {
	Kind         TemplateKind `json:"kind"`
	TemplateID   string       `json:"template_id"`
	TemplateName string       `json:"template_name"`
	RowCount     int          `json:"row_count"`
}

// HealthResponse reports service status and capabilities.
type HealthResponse struct {
	Status   string   `json:"status"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
