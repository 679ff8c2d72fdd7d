package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/models"
)

// MemoryCache provides an in-memory L1 cache for evaluation reports.
// Evaluation is deterministic, so a report can be reused for as long as
// the entry is fresh; the TTL only bounds memory, not correctness.
type MemoryCache struct {
	reports   map[string]reportEntry
	mu        sync.RWMutex
	reportTTL time.Duration
}

type reportEntry struct {
	report    *models.EvaluationReport
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(reportTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		reports:   make(map[string]reportEntry),
		reportTTL: reportTTL,
	}
}

// ReportKey derives a stable cache key from a template kind and a
// canonical value map.
func ReportKey(kind string, values engine.ValueMap) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(kind)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(values[k], 'g', -1, 64))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// GetReport retrieves a cached report if fresh
func (c *MemoryCache) GetReport(key string) (*models.EvaluationReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.reports[key]
	if !exists {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > c.reportTTL {
		return nil, false
	}
	return entry.report, true
}

// SetReport caches a report
func (c *MemoryCache) SetReport(key string, report *models.EvaluationReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reports[key] = reportEntry{
		report:    report,
		fetchedAt: time.Now(),
	}
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.reports = make(map[string]reportEntry)
	c.mu.Unlock()
}
