package dto

import (
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment.
type CreatePaymentRequest struct {
	InvoiceID       string          `json:"invoiceID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Method          string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD CHEQUE"`
	PaymentDate     time.Time       `json:"paymentDate" binding:"required"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
}

// UpdatePaymentStatusRequest defines a payment status transition.
// RefundAmount is only honored for REFUNDED; it defaults to the full
// payment amount when omitted.
type UpdatePaymentStatusRequest struct {
	Status       string           `json:"status" binding:"required,oneof=CONFIRMED FAILED CANCELLED REFUNDED"`
	RefundAmount *decimal.Decimal `json:"refundAmount"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	InvoiceID string     `form:"invoiceID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20"`
	Offset    int        `form:"offset,default=0"`
}

// PaymentSummaryParams defines query parameters for the payment summary.
type PaymentSummaryParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string           `json:"paymentID"`
	PaymentNumber   string           `json:"paymentNumber"`
	CompanyID       string           `json:"companyID"`
	InvoiceID       string           `json:"invoiceID"`
	Amount          decimal.Decimal  `json:"amount"`
	Method          string           `json:"method"`
	Status          string           `json:"status"`
	PaymentDate     time.Time        `json:"paymentDate"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	RefundAmount    *decimal.Decimal `json:"refundAmount,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// PaymentSummaryResponse defines the aggregated payment totals for a period.
type PaymentSummaryResponse struct {
	TotalReceived  decimal.Decimal `json:"totalReceived"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	TotalRefunded  decimal.Decimal `json:"totalRefunded"`
	ConfirmedCount int             `json:"confirmedCount"`
	PendingCount   int             `json:"pendingCount"`
	RefundedCount  int             `json:"refundedCount"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		PaymentNumber:   p.PaymentNumber,
		CompanyID:       p.CompanyID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Method:          string(p.Method),
		Status:          string(p.Status),
		PaymentDate:     p.PaymentDate,
		ReferenceNumber: p.ReferenceNumber,
		RefundAmount:    p.RefundAmount,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

// ToListPaymentsResponse converts a slice of domain.Payment to the list DTO.
func ToListPaymentsResponse(payments []domain.Payment) *ListPaymentsResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return &ListPaymentsResponse{Payments: responses}
}

// ToPaymentSummaryResponse converts a domain.PaymentSummary to its DTO.
func ToPaymentSummaryResponse(s *domain.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		TotalReceived:  s.TotalReceived,
		TotalPending:   s.TotalPending,
		TotalRefunded:  s.TotalRefunded,
		ConfirmedCount: s.ConfirmedCount,
		PendingCount:   s.PendingCount,
		RefundedCount:  s.RefundedCount,
	}
}
