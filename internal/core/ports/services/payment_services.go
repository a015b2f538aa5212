package services

import (
	"context"
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment.
	GetPaymentByID(ctx context.Context, companyID string, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of a company's payments.
	ListPayments(ctx context.Context, companyID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)

	// GetPaymentSummary aggregates confirmed and pending payments over a
	// date range.
	GetPaymentSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.PaymentSummary, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment records a pending payment allocated in full to one
	// invoice, after validating the amount against the invoice's
	// outstanding balance.
	CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// ConfirmPayment transitions a pending payment to confirmed and posts
	// the corresponding journal entry. Confirming an already-confirmed
	// payment returns the current state without error. Journal posting is
	// best effort and never fails the confirmation.
	ConfirmPayment(ctx context.Context, companyID string, paymentID string, requestingUserID string) (*domain.Payment, error)

	// RefundPayment transitions a pending or confirmed payment to refunded,
	// recording the refunded amount, and restores the invoice's outstanding
	// balance.
	RefundPayment(ctx context.Context, companyID string, paymentID string, refundAmount decimal.Decimal, requestingUserID string) (*domain.Payment, error)

	// UpdatePaymentStatus applies any other valid status transition
	// (failed, cancelled).
	UpdatePaymentStatus(ctx context.Context, companyID string, paymentID string, newStatus domain.PaymentStatus, requestingUserID string) (*domain.Payment, error)
}

// PaymentReconcilerSvc defines reconciliation operations
type PaymentReconcilerSvc interface {
	// RecalculateInvoiceAmounts re-derives an invoice's paid and
	// outstanding amounts from its full allocation history.
	RecalculateInvoiceAmounts(ctx context.Context, companyID string, invoiceID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	PaymentReconcilerSvc
}
