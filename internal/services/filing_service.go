package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/models"
	log "github.com/sirupsen/logrus"
)

// FilingStore is the persistence contract for filings. All reads are
// scoped to the owning institution.
type FilingStore interface {
	Create(ctx context.Context, f *models.Filing) error
	GetByID(ctx context.Context, id int64, institutionID string) (*models.Filing, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]models.FilingListItem, error)
}

// FilingService persists evaluation runs so submissions stay auditable
// and diffable over time.
type FilingService struct {
	reportSvc  *ReportService
	filingRepo FilingStore
}

// NewFilingService creates a new FilingService
func NewFilingService(reportSvc *ReportService, filingRepo FilingStore) *FilingService {
	return &FilingService{
		reportSvc:  reportSvc,
		filingRepo: filingRepo,
	}
}

// CreateFiling evaluates a submission and stores the frozen outcome.
func (s *FilingService) CreateFiling(ctx context.Context, institutionID string, req *models.CreateFilingRequest) (*models.Filing, error) {
	defer TrackTime("CreateFiling", time.Now())

	report, err := s.reportSvc.Evaluate(ctx, req.Template, req.Values)
	if err != nil {
		return nil, err
	}
	kind, err := engine.ParseKind(req.Template)
	if err != nil {
		return nil, err
	}
	values, err := engine.ParseValueMap(req.Values)
	if err != nil {
		return nil, err
	}

	passed, failed := 0, 0
	for _, r := range report.ValidationResults {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	filing := &models.Filing{
		InstitutionID: institutionID,
		Reference:     req.Reference,
		Template:      kind,
		Values:        values,
		Totals:        report.Totals,
		Ratios:        report.Ratios,
		Results:       report.ValidationResults,
		PassedCount:   passed,
		FailedCount:   failed,
	}
	if err := s.filingRepo.Create(ctx, filing); err != nil {
		return nil, fmt.Errorf("failed to store filing: %w", err)
	}

	log.WithFields(log.Fields{
		"filing_id": filing.ID,
		"template":  filing.Template,
		"failed":    failed,
	}).Info("filing stored")
	return filing, nil
}

// GetFiling retrieves one stored filing belonging to the institution.
func (s *FilingService) GetFiling(ctx context.Context, id int64, institutionID string) (*models.Filing, error) {
	return s.filingRepo.GetByID(ctx, id, institutionID)
}

// ListFilings lists an institution's filings, newest first.
func (s *FilingService) ListFilings(ctx context.Context, institutionID string) ([]models.FilingListItem, error) {
	return s.filingRepo.ListByInstitution(ctx, institutionID)
}
