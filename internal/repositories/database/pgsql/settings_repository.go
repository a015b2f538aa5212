package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	"github.com/qaydhq/qayd_backend/internal/models"
	"github.com/qaydhq/qayd_backend/internal/utils/mapping"
)

type PgxVatSettingsRepository struct {
	BaseRepository
}

// newPgxVatSettingsRepository creates a new repository for VAT settings.
func newPgxVatSettingsRepository(pool *pgxpool.Pool) portsrepo.VatSettingsRepositoryFacade {
	return &PgxVatSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VatSettingsRepositoryFacade = (*PgxVatSettingsRepository)(nil)

// GetVatSettings retrieves a company's VAT settings.
func (r *PgxVatSettingsRepository) GetVatSettings(ctx context.Context, companyID string) (*domain.VatSettings, error) {
	query := `
		SELECT company_id, trn, vat_enabled, filing_frequency, filing_day,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vat_settings
		WHERE company_id = $1;
	`
	var m models.VatSettings
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID, &m.TRN, &m.VatEnabled, &m.FilingFrequency, &m.FilingDay,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find VAT settings for company "+companyID, err)
	}
	settings := mapping.ToDomainVatSettings(m)
	return &settings, nil
}

// UpsertVatSettings creates or replaces a company's VAT settings.
func (r *PgxVatSettingsRepository) UpsertVatSettings(ctx context.Context, settings domain.VatSettings) (*domain.VatSettings, error) {
	query := `
		INSERT INTO vat_settings (company_id, trn, vat_enabled, filing_frequency, filing_day, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id)
		DO UPDATE SET trn = $2, vat_enabled = $3, filing_frequency = $4, filing_day = $5,
		              last_updated_at = $8, last_updated_by = $9;
	`
	_, err := r.Pool.Exec(ctx, query,
		settings.CompanyID, settings.TRN, settings.VatEnabled, string(settings.FilingFrequency), settings.FilingDay,
		settings.CreatedAt, settings.CreatedBy, settings.LastUpdatedAt, settings.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert VAT settings for company "+settings.CompanyID, err)
	}
	return &settings, nil
}
