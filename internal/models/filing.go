package models

import "time"

// Filing is a persisted evaluation run: the supplied values plus the
// report computed from them, frozen at submission time so later reports
// remain diffable even if the rule registry evolves.
type Filing struct {
	ID            int64              `json:"id"`
	InstitutionID string             `json:"institution_id"`
	Reference     string             `json:"reference"`
	Template      TemplateKind       `json:"template"`
	Values        map[string]float64 `json:"values"`
	Totals        Totals             `json:"totals"`
	Ratios        *Ratios            `json:"ratios,omitempty"`
	Results       []ValidationResult `json:"validation_results"`
	PassedCount   int                `json:"passed_count"`
	FailedCount   int                `json:"failed_count"`
	CreatedAt     time.Time          `json:"created_at"`
}

// FilingResponse is the creation payload: the stored filing plus any
// input warnings collected while evaluating it.
type FilingResponse struct {
	Filing   *Filing   `json:"filing"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// FilingListItem represents a filing in a list (metadata only).
type FilingListItem struct {
	ID            int64        `json:"id"`
	InstitutionID string       `json:"institution_id"`
	Reference     string       `json:"reference"`
	Template      TemplateKind `json:"template"`
	PassedCount   int          `json:"passed_count"`
	FailedCount   int          `json:"failed_count"`
	CreatedAt     time.Time    `json:"created_at"`
}
