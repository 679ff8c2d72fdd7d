package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/finreg/corep/internal/cache"
	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/models"
)

func newTestReportService(reportCache *cache.MemoryCache) *ReportService {
	return NewReportService(engine.NewSchemaRegistry(), engine.DefaultRules(), reportCache)
}

func TestEvaluate_FullPipeline(t *testing.T) {
	svc := newTestReportService(nil)

	report, err := svc.Evaluate(context.Background(), "CA1", map[string]any{
		"row_010": 500.0,
		"row_030": 50.0,
		"row_080": 20.0,
		"rwa":     5200.0,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.TemplateID != "C_01.00" {
		t.Errorf("expected template C_01.00, got %s", report.TemplateID)
	}

	ca1, ok := report.Totals.(models.CA1Totals)
	if !ok {
		t.Fatalf("expected CA1Totals, got %T", report.Totals)
	}
	if ca1.CET1 != 530 {
		t.Errorf("expected cet1 530, got %v", ca1.CET1)
	}

	if report.Ratios == nil {
		t.Fatal("expected ratios")
	}
	if report.Ratios.CET1Ratio != 10.19 {
		t.Errorf("expected cet1 ratio 10.19, got %v", report.Ratios.CET1Ratio)
	}
	if !report.Ratios.MeetsCCB {
		t.Error("expected meets_ccb true")
	}

	if len(report.ValidationResults) != engine.DefaultRules().Len() {
		t.Errorf("expected %d validation results, got %d",
			engine.DefaultRules().Len(), len(report.ValidationResults))
	}

	// Fields cover every schema row, with supplied values attached
	if len(report.Fields) != 27 {
		t.Errorf("expected 27 CA1 fields, got %d", len(report.Fields))
	}
	var row010 *models.TemplateField
	for i := range report.Fields {
		if report.Fields[i].RowID == "010" {
			row010 = &report.Fields[i]
		}
	}
	if row010 == nil || row010.Value == nil || *row010.Value != 500 {
		t.Errorf("expected row 010 field with value 500, got %+v", row010)
	}
	if row010.Label == "" {
		t.Error("expected row 010 to carry its schema label")
	}
}

func TestEvaluate_UnknownTemplate(t *testing.T) {
	svc := newTestReportService(nil)

	_, err := svc.Evaluate(context.Background(), "CA9", map[string]any{"row_010": 1.0})
	if !errors.Is(err, engine.ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestEvaluate_MalformedValue(t *testing.T) {
	svc := newTestReportService(nil)

	_, err := svc.Evaluate(context.Background(), "CA1", map[string]any{"row_010": "five hundred"})
	if !errors.Is(err, engine.ErrMalformedValue) {
		t.Errorf("expected ErrMalformedValue, got %v", err)
	}
}

func hasWarning(warnings []models.Warning, code models.WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestEvaluate_Warnings(t *testing.T) {
	svc := newTestReportService(nil)
	ctx, wc := NewWarningContext(context.Background())

	report, err := svc.Evaluate(ctx, "CA1", map[string]any{
		"row_010": 500.0,
		"row_200": 530.0, // computed total, ignored
		"row_999": 1.0,   // unknown row
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !hasWarning(report.Warnings, models.WarnComputedRowGiven) {
		t.Error("expected W2002 for supplied computed-total row")
	}
	if !hasWarning(report.Warnings, models.WarnUnknownRow) {
		t.Error("expected W2001 for unknown row")
	}
	if !hasWarning(report.Warnings, models.WarnNoDenominator) {
		t.Error("expected W3001 when ratios are omitted")
	}

	// The context collector sees the same warnings
	if got := wc.GetWarnings(); len(got) != len(report.Warnings) {
		t.Errorf("collector has %d warnings, report has %d", len(got), len(report.Warnings))
	}
}

func TestEvaluate_WarningOrderIsDeterministic(t *testing.T) {
	svc := newTestReportService(nil)
	raw := map[string]any{
		"row_zz":  1.0, // unknown
		"row_aa":  2.0, // unknown
		"row_200": 530.0,
		"rwa":     5200.0,
	}

	first, err := svc.Evaluate(context.Background(), "CA1", raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Input keys are visited in sorted order: 200, aa, zz
	want := []models.WarningCode{models.WarnComputedRowGiven, models.WarnUnknownRow, models.WarnUnknownRow}
	if len(first.Warnings) != len(want) {
		t.Fatalf("expected %d warnings, got %+v", len(want), first.Warnings)
	}
	for i, code := range want {
		if first.Warnings[i].Code != code {
			t.Errorf("warning %d: expected %s, got %s", i, code, first.Warnings[i].Code)
		}
	}
	if !strings.Contains(first.Warnings[1].Message, `"aa"`) || !strings.Contains(first.Warnings[2].Message, `"zz"`) {
		t.Errorf("expected unknown rows in sorted order, got %+v", first.Warnings)
	}

	for run := 0; run < 5; run++ {
		again, err := svc.Evaluate(context.Background(), "CA1", raw)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(first.Warnings, again.Warnings) {
			t.Fatalf("warning order changed between runs: %+v vs %+v", first.Warnings, again.Warnings)
		}
	}
}

func TestEvaluate_CacheHitReplaysWarningsToCollector(t *testing.T) {
	memCache := cache.NewMemoryCache(time.Minute)
	svc := newTestReportService(memCache)
	raw := map[string]any{"row_010": 500.0, "row_999": 1.0, "rwa": 5200.0}

	if _, err := svc.Evaluate(context.Background(), "CA1", raw); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ctx, wc := NewWarningContext(context.Background())
	report, err := svc.Evaluate(ctx, "CA1", raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !hasWarning(report.Warnings, models.WarnUnknownRow) {
		t.Fatal("expected W2001 on the cached report")
	}
	if got := wc.GetWarnings(); len(got) != len(report.Warnings) {
		t.Errorf("collector has %d warnings after cache hit, report has %d", len(got), len(report.Warnings))
	}
}

func TestEvaluate_NoWarningsForCleanInput(t *testing.T) {
	svc := newTestReportService(nil)

	report, err := svc.Evaluate(context.Background(), "CA1", map[string]any{
		"row_010": 500.0,
		"rwa":     5200.0,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", report.Warnings)
	}
}

func TestEvaluate_CacheServesRepeatSubmissions(t *testing.T) {
	memCache := cache.NewMemoryCache(time.Minute)
	svc := newTestReportService(memCache)
	raw := map[string]any{"row_010": 500.0, "rwa": 5200.0}

	first, err := svc.Evaluate(context.Background(), "CA1", raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Evaluate(context.Background(), "ca1", raw) // kind spelling must not split the cache
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first.Totals, second.Totals) {
		t.Errorf("cached totals differ: %+v vs %+v", first.Totals, second.Totals)
	}
	if !reflect.DeepEqual(first.ValidationResults, second.ValidationResults) {
		t.Errorf("cached validation results differ")
	}
}

func TestEvaluateBatch_OrderAndIsolation(t *testing.T) {
	svc := newTestReportService(nil)

	items := svc.EvaluateBatch(context.Background(), []models.EvaluateRequest{
		{Template: "CA1", Values: map[string]any{"row_010": 500.0, "rwa": 5200.0}},
		{Template: "CA9", Values: map[string]any{"row_010": 1.0}},
		{Template: "CA2", Values: map[string]any{"row_010": 4000.0, "row_100": 500.0, "row_200": 100.0, "row_300": 600.0}},
	})

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.Index != i {
			t.Errorf("item %d has index %d", i, item.Index)
		}
	}

	if items[0].Report == nil || items[0].Error != nil {
		t.Errorf("item 0 should succeed: %+v", items[0])
	}
	if items[1].Error == nil || items[1].Report != nil {
		t.Errorf("item 1 should fail with unknown template: %+v", items[1])
	}
	if items[2].Report == nil {
		t.Fatalf("item 2 should succeed: %+v", items[2])
	}
	ca2, ok := items[2].Report.Totals.(models.CA2Totals)
	if !ok {
		t.Fatalf("expected CA2Totals, got %T", items[2].Report.Totals)
	}
	if ca2.TotalRWA != 5200 {
		t.Errorf("expected total RWA 5200, got %v", ca2.TotalRWA)
	}
}

func TestTemplatesAndRules(t *testing.T) {
	svc := newTestReportService(nil)

	templates := svc.Templates()
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].Kind != models.TemplateCA1 || templates[0].RowCount != 27 {
		t.Errorf("unexpected CA1 listing: %+v", templates[0])
	}
	if templates[1].Kind != models.TemplateCA2 || templates[1].RowCount != 17 {
		t.Errorf("unexpected CA2 listing: %+v", templates[1])
	}

	rules := svc.Rules()
	if len(rules) != engine.DefaultRules().Len() {
		t.Errorf("expected %d rules, got %d", engine.DefaultRules().Len(), len(rules))
	}
	if rules[0].ID != "VAL_001" {
		t.Errorf("expected VAL_001 first, got %s", rules[0].ID)
	}
}
