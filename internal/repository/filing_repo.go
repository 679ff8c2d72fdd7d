package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finreg/corep/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFilingNotFound = errors.New("filing not found")

// FilingRepository handles database operations for filings
type FilingRepository struct {
	pool *pgxpool.Pool
}

// NewFilingRepository creates a new FilingRepository
func NewFilingRepository(pool *pgxpool.Pool) *FilingRepository {
	return &FilingRepository{pool: pool}
}

// Create stores a filing and fills in its ID and creation time.
func (r *FilingRepository) Create(ctx context.Context, f *models.Filing) error {
	valuesJSON, err := json.Marshal(f.Values)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}
	totalsJSON, err := json.Marshal(f.Totals)
	if err != nil {
		return fmt.Errorf("failed to encode totals: %w", err)
	}
	var ratiosJSON []byte
	if f.Ratios != nil {
		if ratiosJSON, err = json.Marshal(f.Ratios); err != nil {
			return fmt.Errorf("failed to encode ratios: %w", err)
		}
	}
	resultsJSON, err := json.Marshal(f.Results)
	if err != nil {
		return fmt.Errorf("failed to encode validation results: %w", err)
	}

	query := `
		INSERT INTO filing (institution_id, reference, template, input_values, totals, ratios, validation_results, passed_count, failed_count, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created
	`
	return r.pool.QueryRow(ctx, query,
		f.InstitutionID, f.Reference, f.Template, valuesJSON, totalsJSON, ratiosJSON, resultsJSON, f.PassedCount, f.FailedCount,
	).Scan(&f.ID, &f.CreatedAt)
}

// GetByID retrieves a filing by ID, scoped to the owning institution.
// A filing owned by another institution is indistinguishable from a
// missing one.
func (r *FilingRepository) GetByID(ctx context.Context, id int64, institutionID string) (*models.Filing, error) {
	query := `
		SELECT id, institution_id, reference, template, input_values, totals, ratios, validation_results, passed_count, failed_count, created
		FROM filing
		WHERE id = $1 AND institution_id = $2
	`
	f := &models.Filing{}
	var valuesJSON, totalsJSON, ratiosJSON, resultsJSON []byte
	err := r.pool.QueryRow(ctx, query, id, institutionID).Scan(
		&f.ID, &f.InstitutionID, &f.Reference, &f.Template,
		&valuesJSON, &totalsJSON, &ratiosJSON, &resultsJSON,
		&f.PassedCount, &f.FailedCount, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFilingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get filing: %w", err)
	}

	if err := json.Unmarshal(valuesJSON, &f.Values); err != nil {
		return nil, fmt.Errorf("failed to decode values: %w", err)
	}
	totals, err := decodeTotals(f.Template, totalsJSON)
	if err != nil {
		return nil, err
	}
	f.Totals = totals
	if len(ratiosJSON) > 0 {
		f.Ratios = &models.Ratios{}
		if err := json.Unmarshal(ratiosJSON, f.Ratios); err != nil {
			return nil, fmt.Errorf("failed to decode ratios: %w", err)
		}
	}
	if err := json.Unmarshal(resultsJSON, &f.Results); err != nil {
		return nil, fmt.Errorf("failed to decode validation results: %w", err)
	}
	return f, nil
}

// ListByInstitution lists filings for one institution, newest first.
func (r *FilingRepository) ListByInstitution(ctx context.Context, institutionID string) ([]models.FilingListItem, error) {
	query := `
		SELECT id, institution_id, reference, template, passed_count, failed_count, created
		FROM filing
		WHERE institution_id = $1
		ORDER BY created DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, institutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}
	defer rows.Close()

	var filings []models.FilingListItem
	for rows.Next() {
		var item models.FilingListItem
		if err := rows.Scan(&item.ID, &item.InstitutionID, &item.Reference, &item.Template,
			&item.PassedCount, &item.FailedCount, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan filing: %w", err)
		}
		filings = append(filings, item)
	}
	return filings, rows.Err()
}

// decodeTotals restores the totals variant matching the filing's template.
func decodeTotals(kind models.TemplateKind, data []byte) (models.Totals, error) {
	switch kind {
	case models.TemplateCA2:
		var t models.CA2Totals
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to decode totals: %w", err)
		}
		return t, nil
	default:
		var t models.CA1Totals
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to decode totals: %w", err)
		}
		return t, nil
	}
}
