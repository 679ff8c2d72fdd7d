package services

import (
	"context"
	"sync"

	"github.com/finreg/corep/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates input warnings raised while a submission
// is evaluated. Handlers that need warnings outside the report itself
// (filing creation surfaces them next to the stored filing) seed a
// collector into the request context; evaluation then adds every warning
// it raises, including those replayed from a cached report.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus the collector itself so the handler can read it after the call.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning records a warning on the collector in ctx. Contexts without
// a collector (evaluate and batch calls, where the report already carries
// its warnings) make this a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// GetWarnings returns the warnings collected so far.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return wc.warnings
}
