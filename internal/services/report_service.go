package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/finreg/corep/internal/cache"
	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxBatchConcurrency caps parallel submissions in one batch call. The
// engine itself is pure and needs no coordination.
const maxBatchConcurrency = 8

// namedInputs are value-map keys that are not row identifiers but are
// still meaningful (externally supplied ratio denominator).
var namedInputs = map[string]struct{}{
	"rwa":       {},
	"total_rwa": {},
}

// ReportService runs the calculation-and-validation pipeline for one
// submission: schema lookup, input normalization, totals, ratios and the
// validation battery. Registries are injected, never ambient.
type ReportService struct {
	schemas *engine.SchemaRegistry
	rules   *engine.RuleRegistry
	cache   *cache.MemoryCache
}

// NewReportService creates a new ReportService. The cache may be nil, in
// which case every evaluation is computed from scratch.
func NewReportService(schemas *engine.SchemaRegistry, rules *engine.RuleRegistry, reportCache *cache.MemoryCache) *ReportService {
	return &ReportService{
		schemas: schemas,
		rules:   rules,
		cache:   reportCache,
	}
}

// Templates lists the supported templates.
func (s *ReportService) Templates() []models.TemplateListItem {
	kinds := s.schemas.Kinds()
	out := make([]models.TemplateListItem, 0, len(kinds))
	for _, kind := range kinds {
		schema, err := s.schemas.Schema(kind)
		if err != nil {
			continue
		}
		out = append(out, models.TemplateListItem{
			Kind:         kind,
			TemplateID:   schema.TemplateID,
			TemplateName: schema.TemplateName,
			RowCount:     len(schema.Rows),
		})
	}
	return out
}

// Schema resolves a caller-supplied template string to its schema.
func (s *ReportService) Schema(template string) (*models.TemplateSchema, error) {
	kind, err := engine.ParseKind(template)
	if err != nil {
		return nil, err
	}
	return s.schemas.Schema(kind)
}

// Rules returns the validation rule registry in evaluation order.
func (s *ReportService) Rules() []models.ValidationRule {
	return s.rules.Describe()
}

// Evaluate runs the full pipeline for one submission. Totals and ratios
// are recomputed fresh on every call; identical submissions are served
// from the report cache with a fresh timestamp.
func (s *ReportService) Evaluate(ctx context.Context, template string, raw map[string]any) (*models.EvaluationReport, error) {
	defer TrackTime("Evaluate", time.Now())

	kind, err := engine.ParseKind(template)
	if err != nil {
		return nil, err
	}
	schema, err := s.schemas.Schema(kind)
	if err != nil {
		return nil, err
	}
	values, err := engine.ParseValueMap(raw)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.GetReport(cache.ReportKey(string(kind), values)); ok {
			log.Debugf("report cache hit for template %s", kind)
			report := *cached
			report.Timestamp = time.Now().UTC()
			// Keep any context collector in step with the report
			for _, w := range report.Warnings {
				AddWarning(ctx, w)
			}
			return &report, nil
		}
	}

	warnings := s.inputWarnings(ctx, schema, values)

	totals := engine.CalculateTotals(kind, values)
	ratios := engine.CalculateRatios(totals, values)
	if ratios == nil {
		warnings = append(warnings, warn(ctx, models.WarnNoDenominator,
			"no positive risk exposure amount available, capital ratios omitted"))
	}
	results := s.rules.Evaluate(values, totals, ratios)

	report := &models.EvaluationReport{
		TemplateID:        schema.TemplateID,
		TemplateName:      schema.TemplateName,
		Fields:            buildFields(schema, values),
		Totals:            totals,
		Ratios:            ratios,
		ValidationResults: results,
		Warnings:          warnings,
		Timestamp:         time.Now().UTC(),
	}

	if s.cache != nil {
		s.cache.SetReport(cache.ReportKey(string(kind), values), report)
	}
	return report, nil
}

// EvaluateBatch evaluates independent submissions concurrently, returning
// outcomes in request order. A failed submission yields an item error and
// does not disturb its siblings.
func (s *ReportService) EvaluateBatch(ctx context.Context, submissions []models.EvaluateRequest) []models.BatchEvaluateItem {
	items := make([]models.BatchEvaluateItem, len(submissions))

	g := new(errgroup.Group)
	g.SetLimit(maxBatchConcurrency)
	for i, sub := range submissions {
		i, sub := i, sub
		g.Go(func() error {
			report, err := s.Evaluate(ctx, sub.Template, sub.Values)
			item := models.BatchEvaluateItem{Index: i}
			if err != nil {
				item.Error = &models.ErrorResponse{Error: "evaluation_failed", Message: err.Error()}
			} else {
				item.Report = report
			}
			items[i] = item
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
	return items
}

// inputWarnings flags supplied keys the calculator will not use as inputs:
// unknown identifiers and computed-total rows (which are always recomputed).
// Keys are visited in sorted order so reports stay diffable run to run.
func (s *ReportService) inputWarnings(ctx context.Context, schema *models.TemplateSchema, values engine.ValueMap) []models.Warning {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []models.Warning
	for _, key := range keys {
		if _, named := namedInputs[key]; named {
			continue
		}
		row, known := schema.Row(key)
		switch {
		case !known:
			warnings = append(warnings, warn(ctx, models.WarnUnknownRow,
				fmt.Sprintf("value supplied for unknown row %q in template %s", key, schema.Kind)))
		case row.IsTotal:
			warnings = append(warnings, warn(ctx, models.WarnComputedRowGiven,
				fmt.Sprintf("row %s is a computed total; the supplied value is ignored and recomputed", key)))
		}
	}
	return warnings
}

func warn(ctx context.Context, code models.WarningCode, message string) models.Warning {
	w := models.Warning{Code: code, Message: message}
	AddWarning(ctx, w)
	return w
}

// buildFields pairs every schema row with its supplied value. Computed
// totals are reported separately; supplied values for total rows are not
// echoed back as field values.
func buildFields(schema *models.TemplateSchema, values engine.ValueMap) []models.TemplateField {
	fields := make([]models.TemplateField, 0, len(schema.Rows))
	for _, row := range schema.Rows {
		field := models.TemplateField{
			RowID:    row.RowID,
			Label:    row.Label,
			Category: row.Category,
			Sign:     row.Sign,
			IsTotal:  row.IsTotal,
		}
		if !row.IsTotal && values.Has(row.RowID) {
			v := values.Get(row.RowID)
			field.Value = &v
		}
		fields = append(fields, field)
	}
	return fields
}
