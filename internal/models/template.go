package models

// TemplateKind identifies a supported COREP template
type TemplateKind string

const (
	TemplateCA1 TemplateKind = "CA1" // C 01.00 - Own Funds
	TemplateCA2 TemplateKind = "CA2" // C 02.00 - Own Funds Requirements
)

// RowSign is the sign convention declared for a template row.
// Deduction rows ("-") are reported as positive magnitudes and
// subtracted by the totals calculator; the schema sign is documentation
// of that convention, not an instruction to flip values twice.
type RowSign string

const (
	SignAdd      RowSign = "+"
	SignDeduct   RowSign = "-"
	SignEither   RowSign = "+/-"
	SignComputed RowSign = "="
	SignPercent  RowSign = "%"
)

// RowDefinition describes one reportable line item in a template.
type RowDefinition struct {
	RowID    string  `json:"row_id"`
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Sign     RowSign `json:"sign"`
	IsTotal  bool    `json:"is_total,omitempty"` // computed by the engine, never supplied
}

// TemplateSchema is the full row layout for one template kind.
// Schemas are built once at startup and shared read-only.
type TemplateSchema struct {
	TemplateID   string          `json:"template_id"`
	TemplateName string          `json:"template_name"`
	Kind         TemplateKind    `json:"kind"`
	Rows         []RowDefinition `json:"rows"`
}

// Row returns the definition for a row identifier, if present.
func (s *TemplateSchema) Row(rowID string) (RowDefinition, bool) {
	for _, r := range s.Rows {
		if r.RowID == rowID {
			return r, true
		}
	}
	return RowDefinition{}, false
}
