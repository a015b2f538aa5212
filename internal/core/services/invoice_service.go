package services

import (
	"context"
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
	"github.com/qaydhq/qayd_backend/internal/utils/ledger"
	"github.com/qaydhq/qayd_backend/internal/utils/vat"
	"github.com/shopspring/decimal"
)

// invoiceService provides invoice creation, VAT computation and lifecycle
// operations.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	paymentReader portsrepo.PaymentReader
	settingsSvc   portssvc.VatSettingsSvcFacade
}

// NewInvoiceService creates a new InvoiceService. The payment reader guards
// financial edits against invoices that already have allocations.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, paymentReader portsrepo.PaymentReader, settingsSvc portssvc.VatSettingsSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		paymentReader: paymentReader,
		settingsSvc:   settingsSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func toVatLines(items []dto.CreateInvoiceItemRequest) []vat.LineInput {
	lines := make([]vat.LineInput, len(items))
	for i, item := range items {
		var vt *domain.VatType
		if item.VatType != nil {
			t := domain.VatType(*item.VatType)
			vt = &t
		}
		lines[i] = vat.LineInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			VatType:     vt,
		}
	}
	return lines
}

func buildItems(invoiceID string, reqItems []dto.CreateInvoiceItemRequest, breakdown *vat.Breakdown) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(reqItems))
	for i, reqItem := range reqItems {
		var vt *domain.VatType
		if reqItem.VatType != nil {
			t := domain.VatType(*reqItem.VatType)
			vt = &t
		}
		line := breakdown.Lines[i]
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: reqItem.Description,
			Quantity:    reqItem.Quantity,
			UnitPrice:   reqItem.UnitPrice,
			Discount:    reqItem.Discount,
			VatType:     vt,
			Subtotal:    line.Subtotal,
			VatAmount:   line.VatAmount,
			LineTotal:   line.LineTotal,
		}
	}
	return items
}

// CreateInvoice computes the VAT breakdown and persists a new draft invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: due date precedes issue date", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}

	settings, err := s.settingsSvc.GetVatSettings(ctx, companyID)
	if err != nil {
		logger.Error("Failed to load VAT settings for invoice creation", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to load VAT settings: %w", err)
	}

	defaultVatType := domain.VatStandard
	if req.VatType != "" {
		defaultVatType = domain.VatType(req.VatType)
	}

	breakdown, err := vat.ComputeInvoiceVat(vat.InvoiceInput{
		Lines:         toVatLines(req.Items),
		VatType:       defaultVatType,
		TotalDiscount: req.Discount,
		SupplierTRN:   settings.TRN,
	}, *settings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	invoice := domain.Invoice{
		InvoiceID:    invoiceID,
		CompanyID:    companyID,
		CustomerName: req.CustomerName,
		CustomerTRN:  req.CustomerTRN,
		SupplierTRN:  settings.TRN,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		VatType:      defaultVatType,
		Status:       domain.InvoiceDraft,

		Subtotal:          breakdown.Subtotal,
		TaxableSubtotal:   breakdown.TaxableSubtotal,
		ZeroRatedSubtotal: breakdown.ZeroRatedSubtotal,
		ExemptSubtotal:    breakdown.ExemptSubtotal,
		DiscountTotal:     breakdown.DiscountTotal,
		VatAmount:         breakdown.VatAmount,
		TotalWithVAT:      breakdown.TotalWithVAT,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: breakdown.TotalWithVAT,

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items := buildItems(invoiceID, req.Items, breakdown)

	saved, err := s.invoiceRepo.SaveInvoice(ctx, invoice, items)
	if err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", saved.InvoiceID), slog.String("invoice_number", saved.InvoiceNumber))
	saved.Items = items
	return saved, nil
}

// UpdateInvoice replaces an invoice's inputs and recomputes its breakdown.
// Paid and cancelled invoices are frozen. Financial inputs (items, discount,
// VAT type) may only change while no payment is allocated to the invoice;
// descriptive fields stay editable regardless.
func (s *invoiceService) UpdateInvoice(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findCompanyInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.InvoicePaid || existing.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: a %s invoice cannot be edited", apperrors.ErrConflict, existing.Status)
	}

	financialChange := req.Items != nil || req.Discount != nil || req.VatType != nil
	if financialChange && existing.Status != domain.InvoiceDraft {
		count, err := s.paymentReader.CountAllocationsByInvoiceID(ctx, invoiceID)
		if err != nil {
			logger.Error("Failed to count allocations for invoice edit", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to check invoice allocations: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: invoice amounts cannot change once payments are allocated", apperrors.ErrConflict)
		}
	}

	settings, err := s.settingsSvc.GetVatSettings(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load VAT settings: %w", err)
	}

	updated := *existing
	if req.CustomerName != nil {
		updated.CustomerName = *req.CustomerName
	}
	if req.CustomerTRN != nil {
		updated.CustomerTRN = *req.CustomerTRN
	}
	if req.IssueDate != nil {
		updated.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		updated.DueDate = *req.DueDate
	}
	if req.VatType != nil {
		updated.VatType = domain.VatType(*req.VatType)
	}
	if req.Discount != nil {
		updated.DiscountTotal = *req.Discount
	}
	if updated.DueDate.Before(updated.IssueDate) {
		return nil, fmt.Errorf("%w: due date precedes issue date", apperrors.ErrValidation)
	}
	if updated.DiscountTotal.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}

	reqItems := req.Items
	if reqItems == nil {
		reqItems = itemsToRequests(existing.Items)
	}

	breakdown, err := vat.ComputeInvoiceVat(vat.InvoiceInput{
		Lines:         toVatLines(reqItems),
		VatType:       updated.VatType,
		TotalDiscount: updated.DiscountTotal,
		SupplierTRN:   settings.TRN,
	}, *settings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.SupplierTRN = settings.TRN
	updated.Subtotal = breakdown.Subtotal
	updated.TaxableSubtotal = breakdown.TaxableSubtotal
	updated.ZeroRatedSubtotal = breakdown.ZeroRatedSubtotal
	updated.ExemptSubtotal = breakdown.ExemptSubtotal
	updated.DiscountTotal = breakdown.DiscountTotal
	updated.VatAmount = breakdown.VatAmount
	updated.TotalWithVAT = breakdown.TotalWithVAT
	updated.Touch(requestingUserID, now)

	items := buildItems(invoiceID, reqItems, breakdown)

	if err := s.invoiceRepo.UpdateInvoiceFinancials(ctx, updated, items); err != nil {
		logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	logger.Info("Invoice updated", slog.String("invoice_id", invoiceID))
	updated.Items = items
	return &updated, nil
}

// itemsToRequests converts stored items back into request form so an update
// without items reuses the existing lines.
func itemsToRequests(items []domain.InvoiceItem) []dto.CreateInvoiceItemRequest {
	reqs := make([]dto.CreateInvoiceItemRequest, len(items))
	for i, item := range items {
		var vt *string
		if item.VatType != nil {
			s := string(*item.VatType)
			vt = &s
		}
		reqs[i] = dto.CreateInvoiceItemRequest{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			VatType:     vt,
		}
	}
	return reqs
}

// UpdateInvoiceStatus applies an explicit lifecycle transition.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, companyID string, invoiceID string, newStatus domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findCompanyInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if !ledger.ValidExplicitTransition(existing.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot transition invoice from %s to %s", apperrors.ErrConflict, existing.Status, newStatus)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, newStatus, requestingUserID, now); err != nil {
		logger.Error("Failed to update invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	existing.Status = newStatus
	existing.Touch(requestingUserID, now)
	logger.Info("Invoice status updated", slog.String("invoice_id", invoiceID), slog.String("status", string(newStatus)))
	return existing, nil
}

// GetInvoiceByID retrieves an invoice, deriving overdue status at read time.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.findCompanyInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice.Status = ledger.DeriveReadStatus(invoice.Status, invoice.OutstandingAmount, invoice.DueDate, time.Now().UTC())
	return invoice, nil
}

// ListInvoices retrieves a page of a company's invoices with read-time
// status derivation applied.
func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	invoices, err := s.invoiceRepo.ListInvoicesByCompany(ctx, companyID, params.From, params.To, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	now := time.Now().UTC()
	for i := range invoices {
		invoices[i].Status = ledger.DeriveReadStatus(invoices[i].Status, invoices[i].OutstandingAmount, invoices[i].DueDate, now)
	}
	return dto.ToListInvoicesResponse(invoices), nil
}

// findCompanyInvoice loads an invoice and enforces tenant scope.
func (s *invoiceService) findCompanyInvoice(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	return invoice, nil
}
