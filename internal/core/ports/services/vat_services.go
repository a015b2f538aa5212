package services

import (
	"context"
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/dto"
)

// VatReaderSvc defines read operations for VAT reporting data
type VatReaderSvc interface {
	// GetVatSummary aggregates output VAT, taxable sales and adjustments
	// over a reporting period, live from the invoice ledger.
	GetVatSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.VatSummary, error)

	// GetFilingByID retrieves a filing snapshot with its line items.
	GetFilingByID(ctx context.Context, companyID string, filingID string) (*domain.VatFiling, error)

	// ListFilings retrieves a paginated list of a company's filings.
	ListFilings(ctx context.Context, companyID string, params dto.ListVatFilingsParams) (*dto.ListVatFilingsResponse, error)
}

// VatWriterSvc defines write operations for VAT filings and adjustments
type VatWriterSvc interface {
	// CreateVatFiling freezes the period's VAT summary into an immutable
	// draft filing snapshot. At most one filing may exist per company and
	// period.
	CreateVatFiling(ctx context.Context, companyID string, req dto.CreateVatFilingRequest, creatorUserID string) (*domain.VatFiling, error)

	// UpdateFilingStatus advances a filing through its lifecycle
	// (submit, accept, reject).
	UpdateFilingStatus(ctx context.Context, companyID string, filingID string, newStatus domain.FilingStatus, requestingUserID string) (*domain.VatFiling, error)

	// CreateAdjustment records a manual VAT adjustment for a period.
	CreateAdjustment(ctx context.Context, companyID string, req dto.CreateVatAdjustmentRequest, creatorUserID string) (*domain.VatAdjustment, error)
}

// VatExportSvc defines export operations for tax-authority submissions
type VatExportSvc interface {
	// GenerateFtaAuditFile renders a filing's snapshot as a CSV audit file
	// and returns the file contents with a suggested filename.
	GenerateFtaAuditFile(ctx context.Context, companyID string, filingID string) ([]byte, string, error)
}

// VatSvcFacade combines all VAT-related service interfaces
type VatSvcFacade interface {
	VatReaderSvc
	VatWriterSvc
	VatExportSvc
}
