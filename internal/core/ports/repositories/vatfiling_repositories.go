package repositories

import (
	"context"
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
)

// VatFilingReader defines read operations for VAT filings and adjustments.
type VatFilingReader interface {
	// FindFilingByID retrieves a filing with its line items.
	FindFilingByID(ctx context.Context, filingID string) (*domain.VatFiling, error)

	// FindFilingByPeriod retrieves the filing for a company's period key,
	// or apperrors.ErrNotFound when the period has not been filed.
	FindFilingByPeriod(ctx context.Context, companyID string, filingPeriod string) (*domain.VatFiling, error)

	// ListFilingsByCompany retrieves a company's filings, newest period first.
	ListFilingsByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.VatFiling, error)

	// ListAdjustmentsByPeriod retrieves manual VAT adjustments whose
	// adjustment date falls within [from, to].
	ListAdjustmentsByPeriod(ctx context.Context, companyID string, from, to time.Time) ([]domain.VatAdjustment, error)
}

// VatFilingWriter defines write operations for VAT filings and adjustments.
type VatFilingWriter interface {
	// SaveFiling persists a filing snapshot with its items in one
	// transaction. Returns apperrors.ErrDuplicate when a filing already
	// exists for the company and period.
	SaveFiling(ctx context.Context, filing domain.VatFiling) (*domain.VatFiling, error)

	// UpdateFilingStatus transitions a filing's lifecycle status. The
	// financial snapshot is never modified.
	UpdateFilingStatus(ctx context.Context, filingID string, newStatus domain.FilingStatus, updatedBy string, updatedAt time.Time) (*domain.VatFiling, error)

	// SaveAdjustment persists a manual VAT adjustment.
	SaveAdjustment(ctx context.Context, adjustment domain.VatAdjustment) (*domain.VatAdjustment, error)
}

// VatFilingRepositoryFacade combines all VAT filing repository interfaces.
type VatFilingRepositoryFacade interface {
	VatFilingReader
	VatFilingWriter
}
