package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/middleware"
	"github.com/finreg/corep/internal/models"
	"github.com/finreg/corep/internal/repository"
	"github.com/finreg/corep/internal/services"
	"github.com/gin-gonic/gin"
)

// memFilingStore is an in-memory services.FilingStore with the same
// institution scoping contract as the Postgres repository.
type memFilingStore struct {
	mu      sync.Mutex
	nextID  int64
	filings map[int64]*models.Filing
}

func newMemFilingStore() *memFilingStore {
	return &memFilingStore{filings: make(map[int64]*models.Filing)}
}

func (s *memFilingStore) Create(_ context.Context, f *models.Filing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	f.CreatedAt = time.Now().UTC()
	stored := *f
	s.filings[f.ID] = &stored
	return nil
}

func (s *memFilingStore) GetByID(_ context.Context, id int64, institutionID string) (*models.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.filings[id]
	if !ok || f.InstitutionID != institutionID {
		return nil, repository.ErrFilingNotFound
	}
	return f, nil
}

func (s *memFilingStore) ListByInstitution(_ context.Context, institutionID string) ([]models.FilingListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.FilingListItem
	for _, f := range s.filings {
		if f.InstitutionID != institutionID {
			continue
		}
		items = append(items, models.FilingListItem{
			ID:            f.ID,
			InstitutionID: f.InstitutionID,
			Reference:     f.Reference,
			Template:      f.Template,
			PassedCount:   f.PassedCount,
			FailedCount:   f.FailedCount,
			CreatedAt:     f.CreatedAt,
		})
	}
	return items, nil
}

func newFilingRouter(store services.FilingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	reportSvc := services.NewReportService(engine.NewSchemaRegistry(), engine.DefaultRules(), nil)
	filingHandler := NewFilingHandler(services.NewFilingService(reportSvc, store))

	router := gin.New()
	router.Use(middleware.IdentifyInstitution())
	filings := router.Group("/filings", middleware.RequireInstitution())
	filings.POST("", filingHandler.Create)
	filings.GET("", filingHandler.List)
	filings.GET("/:id", filingHandler.Get)
	return router
}

func doFilingJSON(t *testing.T, router *gin.Engine, method, path, body, institution string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if institution != "" {
		req.Header.Set("X-Institution-ID", institution)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFilingRoutes_RequireInstitution(t *testing.T) {
	router := newFilingRouter(newMemFilingStore())

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/filings", `{"reference":"Q1-2026","template":"CA1","values":{"row_010":500}}`},
		{http.MethodGet, "/filings", ""},
		{http.MethodGet, "/filings/1", ""},
	}
	for _, tc := range cases {
		w := doFilingJSON(t, router, tc.method, tc.path, tc.body, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without header: expected 401, got %d", tc.method, tc.path, w.Code)
			continue
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error != "unauthorized" {
			t.Errorf("%s %s: expected unauthorized, got %s", tc.method, tc.path, resp.Error)
		}
	}
}

func TestCreateFiling_SurfacesWarnings(t *testing.T) {
	router := newFilingRouter(newMemFilingStore())

	w := doFilingJSON(t, router, http.MethodPost, "/filings",
		`{"reference":"Q1-2026","template":"CA1","values":{"row_010":500,"row_200":530,"row_999":1,"rwa":5200}}`,
		"inst-a")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Filing   json.RawMessage  `json:"filing"`
		Warnings []models.Warning `json:"warnings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Filing) == 0 {
		t.Fatal("expected stored filing in response")
	}
	codes := make(map[models.WarningCode]bool)
	for _, warning := range resp.Warnings {
		codes[warning.Code] = true
	}
	if !codes[models.WarnComputedRowGiven] {
		t.Error("expected W2002 for supplied computed-total row")
	}
	if !codes[models.WarnUnknownRow] {
		t.Error("expected W2001 for unknown row")
	}
}

func TestGetFiling_ScopedToInstitution(t *testing.T) {
	router := newFilingRouter(newMemFilingStore())

	w := doFilingJSON(t, router, http.MethodPost, "/filings",
		`{"reference":"Q1-2026","template":"CA1","values":{"row_010":500,"rwa":5200}}`,
		"inst-a")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Another institution reads the same ID as not found
	w = doFilingJSON(t, router, http.MethodGet, "/filings/1", "", "inst-b")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign filing, got %d: %s", w.Code, w.Body.String())
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errResp.Error != "not_found" {
		t.Errorf("expected not_found, got %s", errResp.Error)
	}

	// The owner still reads it back
	w = doFilingJSON(t, router, http.MethodGet, "/filings/1", "", "inst-a")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", w.Code, w.Body.String())
	}
	var filing struct {
		ID            int64  `json:"id"`
		InstitutionID string `json:"institution_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &filing); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if filing.ID != 1 || filing.InstitutionID != "inst-a" {
		t.Errorf("expected filing 1 for inst-a, got %+v", filing)
	}

	// Listing is scoped the same way
	w = doFilingJSON(t, router, http.MethodGet, "/filings", "", "inst-b")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var items []models.FilingListItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no filings for inst-b, got %d", len(items))
	}
}
