package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates the state of a payment event.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// ValidPaymentStatus reports whether the given value is one of the five payment states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentConfirmed, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCard         PaymentMethod = "CARD"
	MethodCheque       PaymentMethod = "CHEQUE"
)

// ValidPaymentMethod reports whether the given value is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCard, MethodCheque:
		return true
	}
	return false
}

// Payment represents one payment event against exactly one invoice.
type Payment struct {
	PaymentID       string           `json:"paymentID"`     // Primary Key (UUID)
	CompanyID       string           `json:"companyID"`     // Tenant scope
	InvoiceID       string           `json:"invoiceID"`     // FK -> Invoice.invoiceID
	PaymentNumber   string           `json:"paymentNumber"` // Sequential per company per year (PAY-<year>-<seq>)
	Amount          decimal.Decimal  `json:"amount"`
	Method          PaymentMethod    `json:"method"`
	Status          PaymentStatus    `json:"status"`
	PaymentDate     time.Time        `json:"paymentDate"`
	ReferenceNumber string           `json:"referenceNumber"` // Nullable external reference
	RefundAmount    *decimal.Decimal `json:"refundAmount"`    // Set when refunded; defaults to full amount
	Notes           string           `json:"notes"`
	AuditFields
}

// CountsTowardPaid reports whether this payment currently contributes to an
// invoice's paid amount. Failed, cancelled and refunded payments never do.
func (p Payment) CountsTowardPaid() bool {
	return p.Status == PaymentPending || p.Status == PaymentConfirmed
}

// PaymentAllocation links a payment to an invoice for a specific amount.
// One allocation per payment in the current design; modeled separately so a
// split-payment extension needs no schema change.
type PaymentAllocation struct {
	AllocationID    string          `json:"allocationID"` // Primary Key (UUID)
	PaymentID       string          `json:"paymentID"`    // FK -> Payment.paymentID
	InvoiceID       string          `json:"invoiceID"`    // FK -> Invoice.invoiceID
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	AuditFields
}

// PaymentSummary aggregates payment activity over a period.
// Failed, cancelled and refunded payments are excluded from the totals.
type PaymentSummary struct {
	TotalReceived  decimal.Decimal `json:"totalReceived"` // confirmed
	TotalPending   decimal.Decimal `json:"totalPending"`  // pending
	ConfirmedCount int             `json:"confirmedCount"`
	PendingCount   int             `json:"pendingCount"`
	RefundedCount  int             `json:"refundedCount"`
	TotalRefunded  decimal.Decimal `json:"totalRefunded"`
}
