package repositories

import (
	"context"
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoiceID retrieves all payments against one invoice.
	ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// ListPaymentsByCompany retrieves payments for a company, optionally
	// filtered by payment-date range, newest first.
	ListPaymentsByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]domain.Payment, error)

	// FindAllocationsByInvoiceID retrieves the full allocation history of an invoice.
	FindAllocationsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.PaymentAllocation, error)

	// CountAllocationsByInvoiceID reports how many allocations reference an invoice.
	CountAllocationsByInvoiceID(ctx context.Context, invoiceID string) (int, error)

	// GetPaymentSummary aggregates payments in [from, to] for a company.
	// Failed, cancelled and refunded payments are excluded from the totals.
	GetPaymentSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.PaymentSummary, error)
}

// PaymentWriter defines the ledger-mutating payment operations. Every method
// runs as one atomic transaction that locks the invoice row before the
// balance check and recalculates the invoice's paid/outstanding amounts
// before committing.
type PaymentWriter interface {
	// CreatePaymentWithAllocation validates the amount against the locked
	// invoice's outstanding balance, assigns the next sequential payment
	// number for the company's year, inserts the pending payment and its
	// full-amount allocation, and recalculates the invoice. Returns the
	// payment with its number populated, or apperrors.ErrValidation when
	// the amount exceeds the outstanding balance.
	CreatePaymentWithAllocation(ctx context.Context, payment domain.Payment, allocation domain.PaymentAllocation) (*domain.Payment, error)

	// UpdatePaymentStatus transitions a payment and recalculates its
	// invoice within the same transaction. refundAmount is persisted when
	// the new status is refunded.
	UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus domain.PaymentStatus, refundAmount *decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Payment, error)

	// RecalculateInvoiceAmounts re-derives paid/outstanding amounts and the
	// payment-derived status from the full allocation history, in its own
	// transaction with the invoice row locked. Idempotent; safe to invoke
	// at any time for self-healing reconciliation.
	RecalculateInvoiceAmounts(ctx context.Context, invoiceID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
