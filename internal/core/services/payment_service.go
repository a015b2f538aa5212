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
	"github.com/shopspring/decimal"
)

// allowedPaymentTransitions maps each payment status to the statuses it may
// move to. Failed, cancelled and refunded are terminal.
var allowedPaymentTransitions = map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentPending:   {domain.PaymentConfirmed, domain.PaymentFailed, domain.PaymentCancelled, domain.PaymentRefunded},
	domain.PaymentConfirmed: {domain.PaymentRefunded},
}

func validPaymentTransition(from, to domain.PaymentStatus) bool {
	for _, allowed := range allowedPaymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// paymentService provides payment recording, confirmation and reconciliation.
type paymentService struct {
	paymentRepo   portsrepo.PaymentRepositoryFacade
	invoiceReader portsrepo.InvoiceReader
	accountingSvc portssvc.AccountingWriterSvc
}

// NewPaymentService creates a new PaymentService. accountingSvc may be nil
// in tests; journal posting is skipped when absent.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceReader portsrepo.InvoiceReader, accountingSvc portssvc.AccountingWriterSvc) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:   paymentRepo,
		invoiceReader: invoiceReader,
		accountingSvc: accountingSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment records a pending payment allocated in full to one invoice.
// The amount-versus-outstanding check runs inside the repository transaction
// with the invoice row locked, so concurrent payments cannot both pass it.
func (s *paymentService) CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if !domain.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}

	invoice, err := s.invoiceReader.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", req.InvoiceID))
	}
	if invoice.Status == domain.InvoiceDraft || invoice.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: cannot record a payment against a %s invoice", apperrors.ErrConflict, invoice.Status)
	}

	now := time.Now().UTC()
	paymentID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	payment := domain.Payment{
		PaymentID:       paymentID,
		CompanyID:       companyID,
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		Method:          method,
		Status:          domain.PaymentPending,
		PaymentDate:     req.PaymentDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		AuditFields:     audit,
	}
	allocation := domain.PaymentAllocation{
		AllocationID:    uuid.NewString(),
		PaymentID:       paymentID,
		InvoiceID:       req.InvoiceID,
		AllocatedAmount: req.Amount,
		AuditFields:     audit,
	}

	saved, err := s.paymentRepo.CreatePaymentWithAllocation(ctx, payment, allocation)
	if err != nil {
		logger.Error("Failed to create payment", slog.String("error", err.Error()), slog.String("invoice_id", req.InvoiceID))
		return nil, err
	}

	logger.Info("Payment recorded", slog.String("payment_id", saved.PaymentID), slog.String("payment_number", saved.PaymentNumber), slog.String("invoice_id", req.InvoiceID))
	return saved, nil
}

// ConfirmPayment transitions a pending payment to confirmed and posts the
// corresponding journal entry. Confirming an already-confirmed payment is a
// no-op returning the current state, so the journal is never posted twice.
// Confirmation succeeds even when the posting fails; the error is logged
// for reconciliation.
func (s *paymentService) ConfirmPayment(ctx context.Context, companyID string, paymentID string, requestingUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findCompanyPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.PaymentConfirmed {
		logger.Info("Payment already confirmed", slog.String("payment_id", paymentID))
		return existing, nil
	}

	payment, err := s.transitionPayment(ctx, companyID, paymentID, domain.PaymentConfirmed, nil, requestingUserID)
	if err != nil {
		return nil, err
	}

	if s.accountingSvc != nil {
		invoice, invErr := s.invoiceReader.FindInvoiceByID(ctx, payment.InvoiceID)
		if invErr != nil {
			logger.Error("Journal posting skipped: invoice load failed", slog.String("error", invErr.Error()), slog.String("payment_id", paymentID))
			return payment, nil
		}
		if postErr := s.accountingSvc.PostPaymentJournal(ctx, *payment, *invoice, domain.SourcePaymentConfirmation, requestingUserID); postErr != nil {
			logger.Error("Journal posting failed for confirmed payment", slog.String("error", postErr.Error()), slog.String("payment_id", paymentID))
		}
	}

	return payment, nil
}

// RefundPayment transitions a pending or confirmed payment to refunded and
// restores the invoice's outstanding balance via the shared recalculation.
// The reversing journal entry is posted only when the payment had been
// confirmed; a pending payment never reached the ledger.
func (s *paymentService) RefundPayment(ctx context.Context, companyID string, paymentID string, refundAmount decimal.Decimal, requestingUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if refundAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}

	existing, err := s.findCompanyPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if refundAmount.GreaterThan(existing.Amount) {
		return nil, fmt.Errorf("%w: refund amount %s exceeds payment amount %s", apperrors.ErrValidation, refundAmount, existing.Amount)
	}
	wasConfirmed := existing.Status == domain.PaymentConfirmed

	payment, err := s.transitionPayment(ctx, companyID, paymentID, domain.PaymentRefunded, &refundAmount, requestingUserID)
	if err != nil {
		return nil, err
	}

	if s.accountingSvc != nil && wasConfirmed {
		invoice, invErr := s.invoiceReader.FindInvoiceByID(ctx, payment.InvoiceID)
		if invErr != nil {
			logger.Error("Journal posting skipped: invoice load failed", slog.String("error", invErr.Error()), slog.String("payment_id", paymentID))
			return payment, nil
		}
		if postErr := s.accountingSvc.PostPaymentJournal(ctx, *payment, *invoice, domain.SourcePaymentRefund, requestingUserID); postErr != nil {
			logger.Error("Journal posting failed for refunded payment", slog.String("error", postErr.Error()), slog.String("payment_id", paymentID))
		}
	}

	return payment, nil
}

// UpdatePaymentStatus applies a failed or cancelled transition.
func (s *paymentService) UpdatePaymentStatus(ctx context.Context, companyID string, paymentID string, newStatus domain.PaymentStatus, requestingUserID string) (*domain.Payment, error) {
	if !domain.ValidPaymentStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, newStatus)
	}
	if newStatus == domain.PaymentConfirmed || newStatus == domain.PaymentRefunded {
		return nil, fmt.Errorf("%w: use the confirm or refund operation for %s", apperrors.ErrValidation, newStatus)
	}
	return s.transitionPayment(ctx, companyID, paymentID, newStatus, nil, requestingUserID)
}

// transitionPayment validates the status change then delegates to the
// repository, which recalculates the invoice in the same transaction.
func (s *paymentService) transitionPayment(ctx context.Context, companyID string, paymentID string, newStatus domain.PaymentStatus, refundAmount *decimal.Decimal, requestingUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findCompanyPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if !validPaymentTransition(existing.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot transition payment from %s to %s", apperrors.ErrConflict, existing.Status, newStatus)
	}

	now := time.Now().UTC()
	updated, err := s.paymentRepo.UpdatePaymentStatus(ctx, paymentID, newStatus, refundAmount, requestingUserID, now)
	if err != nil {
		logger.Error("Failed to update payment status", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, err
	}

	logger.Info("Payment status updated", slog.String("payment_id", paymentID), slog.String("status", string(newStatus)))
	return updated, nil
}

// GetPaymentByID retrieves a payment scoped to the company.
func (s *paymentService) GetPaymentByID(ctx context.Context, companyID string, paymentID string) (*domain.Payment, error) {
	return s.findCompanyPayment(ctx, companyID, paymentID)
}

// ListPayments retrieves a page of a company's payments.
func (s *paymentService) ListPayments(ctx context.Context, companyID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	if params.InvoiceID != "" {
		payments, err := s.paymentRepo.ListPaymentsByInvoiceID(ctx, params.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to list payments: %w", err)
		}
		scoped := payments[:0]
		for _, p := range payments {
			if p.CompanyID == companyID {
				scoped = append(scoped, p)
			}
		}
		return dto.ToListPaymentsResponse(scoped), nil
	}

	payments, err := s.paymentRepo.ListPaymentsByCompany(ctx, companyID, params.From, params.To, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return dto.ToListPaymentsResponse(payments), nil
}

// GetPaymentSummary aggregates payment activity over a period.
func (s *paymentService) GetPaymentSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.PaymentSummary, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}
	return s.paymentRepo.GetPaymentSummary(ctx, companyID, from, to)
}

// RecalculateInvoiceAmounts re-derives an invoice's paid and outstanding
// amounts from its full allocation history.
func (s *paymentService) RecalculateInvoiceAmounts(ctx context.Context, companyID string, invoiceID string) error {
	invoice, err := s.invoiceReader.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.CompanyID != companyID {
		return apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
	}
	return s.paymentRepo.RecalculateInvoiceAmounts(ctx, invoiceID)
}

// findCompanyPayment loads a payment and enforces tenant scope.
func (s *paymentService) findCompanyPayment(ctx context.Context, companyID string, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
	}
	return payment, nil
}
