package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
	"github.com/qaydhq/qayd_backend/internal/utils/dates"
	"github.com/qaydhq/qayd_backend/internal/utils/rounding"
	"github.com/shopspring/decimal"
)

// vatService provides VAT summary aggregation, filing snapshots and
// manual adjustments.
type vatService struct {
	filingRepo    portsrepo.VatFilingRepositoryFacade
	invoiceReader portsrepo.InvoiceReader
	settingsSvc   portssvc.VatSettingsSvcFacade
}

// NewVatService creates a new VatService.
func NewVatService(filingRepo portsrepo.VatFilingRepositoryFacade, invoiceReader portsrepo.InvoiceReader, settingsSvc portssvc.VatSettingsSvcFacade) portssvc.VatSvcFacade {
	return &vatService{
		filingRepo:    filingRepo,
		invoiceReader: invoiceReader,
		settingsSvc:   settingsSvc,
	}
}

var _ portssvc.VatSvcFacade = (*vatService)(nil)

// includedInFiling reports whether an invoice contributes to a period's VAT
// position. Drafts have not been issued and cancelled invoices are void.
func includedInFiling(inv *domain.Invoice) bool {
	return inv.Status != domain.InvoiceDraft && inv.Status != domain.InvoiceCancelled
}

// GetVatSummary aggregates the live VAT position over [from, to].
func (s *vatService) GetVatSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.VatSummary, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}

	invoices, err := s.invoiceReader.ListInvoicesByIssueDateRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for period: %w", err)
	}
	adjustments, err := s.filingRepo.ListAdjustmentsByPeriod(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for period: %w", err)
	}

	summary := &domain.VatSummary{
		PeriodStart:    from,
		PeriodEnd:      to,
		TaxableSales:   decimal.Zero,
		ZeroRatedSales: decimal.Zero,
		ExemptSales:    decimal.Zero,
		VatCollected:   decimal.Zero,
		AdjustmentVat:  decimal.Zero,
	}
	for i := range invoices {
		inv := &invoices[i]
		if !includedInFiling(inv) {
			continue
		}
		summary.TaxableSales = summary.TaxableSales.Add(inv.TaxableSubtotal)
		summary.ZeroRatedSales = summary.ZeroRatedSales.Add(inv.ZeroRatedSubtotal)
		summary.ExemptSales = summary.ExemptSales.Add(inv.ExemptSubtotal)
		summary.VatCollected = summary.VatCollected.Add(inv.VatAmount)
		summary.InvoiceCount++
	}
	for _, adj := range adjustments {
		summary.AdjustmentVat = summary.AdjustmentVat.Add(adj.VatImpact)
	}
	summary.NetVatPayable = rounding.RoundAmount(summary.VatCollected.Add(summary.AdjustmentVat))

	return summary, nil
}

// CreateVatFiling freezes the period's summary into an immutable draft
// snapshot. The repository enforces one filing per company and period.
func (s *vatService) CreateVatFiling(ctx context.Context, companyID string, req dto.CreateVatFilingRequest, creatorUserID string) (*domain.VatFiling, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from := dates.Normalize(req.PeriodStart)
	to := dates.Normalize(req.PeriodEnd)
	summary, err := s.GetVatSummary(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceReader.ListInvoicesByIssueDateRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for period: %w", err)
	}

	now := time.Now().UTC()
	filingID := uuid.NewString()
	items := make([]domain.VatFilingItem, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if !includedInFiling(inv) {
			continue
		}
		items = append(items, domain.VatFilingItem{
			FilingItemID:    uuid.NewString(),
			FilingID:        filingID,
			InvoiceID:       inv.InvoiceID,
			InvoiceNumber:   inv.InvoiceNumber,
			IssueDate:       inv.IssueDate,
			TaxableAmount:   inv.TaxableSubtotal,
			ZeroRatedAmount: inv.ZeroRatedSubtotal,
			ExemptAmount:    inv.ExemptSubtotal,
			VatAmount:       inv.VatAmount,
		})
	}

	filing := domain.VatFiling{
		FilingID:     filingID,
		CompanyID:    companyID,
		FilingPeriod: dates.PeriodKey(from, to),
		PeriodStart:  from,
		PeriodEnd:    to,
		Status:       domain.FilingDraft,

		TaxableSales:   summary.TaxableSales,
		ZeroRatedSales: summary.ZeroRatedSales,
		ExemptSales:    summary.ExemptSales,
		VatCollected:   summary.VatCollected,
		AdjustmentVat:  summary.AdjustmentVat,
		NetVatPayable:  summary.NetVatPayable,

		Items: items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.filingRepo.SaveFiling(ctx, filing)
	if err != nil {
		logger.Error("Failed to save VAT filing", slog.String("error", err.Error()), slog.String("company_id", companyID), slog.String("filing_period", filing.FilingPeriod))
		return nil, err
	}

	logger.Info("VAT filing created", slog.String("filing_id", saved.FilingID), slog.String("filing_period", saved.FilingPeriod))
	return saved, nil
}

// UpdateFilingStatus advances a filing through its lifecycle. The financial
// snapshot is never touched.
func (s *vatService) UpdateFilingStatus(ctx context.Context, companyID string, filingID string, newStatus domain.FilingStatus, requestingUserID string) (*domain.VatFiling, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findCompanyFiling(ctx, companyID, filingID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidFilingTransition(existing.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot transition filing from %s to %s", apperrors.ErrConflict, existing.Status, newStatus)
	}

	now := time.Now().UTC()
	updated, err := s.filingRepo.UpdateFilingStatus(ctx, filingID, newStatus, requestingUserID, now)
	if err != nil {
		logger.Error("Failed to update filing status", slog.String("error", err.Error()), slog.String("filing_id", filingID))
		return nil, err
	}

	logger.Info("VAT filing status updated", slog.String("filing_id", filingID), slog.String("status", string(newStatus)))
	return updated, nil
}

// CreateAdjustment records a manual VAT correction. Credits reduce the net
// VAT payable, debits increase it.
func (s *vatService) CreateAdjustment(ctx context.Context, companyID string, req dto.CreateVatAdjustmentRequest, creatorUserID string) (*domain.VatAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	adjType := domain.AdjustmentType(req.Type)
	if !domain.ValidAdjustmentType(adjType) {
		return nil, fmt.Errorf("%w: unknown adjustment type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: adjustment amount must be positive", apperrors.ErrValidation)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", apperrors.ErrValidation)
	}

	vatImpact := rounding.RoundAmount(req.Amount)
	if adjType == domain.AdjustmentCredit {
		vatImpact = vatImpact.Neg()
	}

	now := time.Now().UTC()
	adjustment := domain.VatAdjustment{
		AdjustmentID:   uuid.NewString(),
		CompanyID:      companyID,
		Type:           adjType,
		Amount:         req.Amount,
		VatImpact:      vatImpact,
		Reason:         req.Reason,
		AdjustmentDate: dates.Normalize(req.AdjustmentDate),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.filingRepo.SaveAdjustment(ctx, adjustment)
	if err != nil {
		logger.Error("Failed to save VAT adjustment", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	logger.Info("VAT adjustment created", slog.String("adjustment_id", saved.AdjustmentID), slog.String("type", string(adjType)))
	return saved, nil
}

// GetFilingByID retrieves a filing snapshot scoped to the company.
func (s *vatService) GetFilingByID(ctx context.Context, companyID string, filingID string) (*domain.VatFiling, error) {
	return s.findCompanyFiling(ctx, companyID, filingID)
}

// ListFilings retrieves a page of a company's filings.
func (s *vatService) ListFilings(ctx context.Context, companyID string, params dto.ListVatFilingsParams) (*dto.ListVatFilingsResponse, error) {
	filings, err := s.filingRepo.ListFilingsByCompany(ctx, companyID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}
	return dto.ToListVatFilingsResponse(filings), nil
}

// GenerateFtaAuditFile renders a filing snapshot as a CSV audit file in the
// layout expected for FTA submissions.
func (s *vatService) GenerateFtaAuditFile(ctx context.Context, companyID string, filingID string) ([]byte, string, error) {
	filing, err := s.findCompanyFiling(ctx, companyID, filingID)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.settingsSvc.GetVatSettings(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load VAT settings: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := [][]string{
		{"TRN", settings.TRN},
		{"Filing Period", filing.FilingPeriod},
		{"Taxable Sales", filing.TaxableSales.StringFixed(2)},
		{"Zero Rated Sales", filing.ZeroRatedSales.StringFixed(2)},
		{"Exempt Sales", filing.ExemptSales.StringFixed(2)},
		{"VAT Collected", filing.VatCollected.StringFixed(2)},
		{"Adjustments", filing.AdjustmentVat.StringFixed(2)},
		{"Net VAT Payable", filing.NetVatPayable.StringFixed(2)},
		{},
		{"Invoice Number", "Issue Date", "Taxable Amount", "Zero Rated Amount", "Exempt Amount", "VAT Amount"},
	}
	for _, row := range header {
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write audit file: %w", err)
		}
	}
	for _, item := range filing.Items {
		row := []string{
			item.InvoiceNumber,
			dates.FormatDay(item.IssueDate),
			item.TaxableAmount.StringFixed(2),
			item.ZeroRatedAmount.StringFixed(2),
			item.ExemptAmount.StringFixed(2),
			item.VatAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write audit file: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write audit file: %w", err)
	}

	filename := fmt.Sprintf("vat_filing_%s.csv", filing.FilingPeriod)
	return buf.Bytes(), filename, nil
}

// findCompanyFiling loads a filing and enforces tenant scope.
func (s *vatService) findCompanyFiling(ctx context.Context, companyID string, filingID string) (*domain.VatFiling, error) {
	filing, err := s.filingRepo.FindFilingByID(ctx, filingID)
	if err != nil {
		return nil, err
	}
	if filing.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("filing %s not found", filingID))
	}
	return filing, nil
}
