package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finreg/corep/internal/models"
)

// ErrUnknownTemplate indicates a template kind outside the supported set.
// An unrecognized kind is a caller error, never silently coerced to CA1.
var ErrUnknownTemplate = errors.New("unknown template kind")

// SchemaRegistry resolves template kinds to their schemas. It is built once
// at startup and shared read-only across requests.
type SchemaRegistry struct {
	schemas map[models.TemplateKind]*models.TemplateSchema
	order   []models.TemplateKind
}

// NewSchemaRegistry builds a registry with the supported COREP templates
// (CA1: Own Funds, CA2: Own Funds Requirements).
func NewSchemaRegistry() *SchemaRegistry {
	r := &SchemaRegistry{schemas: make(map[models.TemplateKind]*models.TemplateSchema)}
	r.add(ca1Schema())
	r.add(ca2Schema())
	return r
}

func (r *SchemaRegistry) add(s *models.TemplateSchema) {
	seen := make(map[string]struct{}, len(s.Rows))
	for _, row := range s.Rows {
		if _, dup := seen[row.RowID]; dup {
			panic(fmt.Sprintf("schema %s: duplicate row id %s", s.TemplateID, row.RowID))
		}
		seen[row.RowID] = struct{}{}
	}
	r.schemas[s.Kind] = s
	r.order = append(r.order, s.Kind)
}

// ParseKind normalizes a caller-supplied template string ("ca1", "CA2", ...)
// to a TemplateKind.
func ParseKind(template string) (models.TemplateKind, error) {
	kind := models.TemplateKind(strings.ToUpper(strings.TrimSpace(template)))
	switch kind {
	case models.TemplateCA1, models.TemplateCA2:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
}

// Schema returns the schema for a template kind.
func (r *SchemaRegistry) Schema(kind models.TemplateKind) (*models.TemplateSchema, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, kind)
	}
	return s, nil
}

// Kinds lists the supported template kinds in registration order.
func (r *SchemaRegistry) Kinds() []models.TemplateKind {
	out := make([]models.TemplateKind, len(r.order))
	copy(out, r.order)
	return out
}
