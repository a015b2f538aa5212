package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the row representation of the payments table.
type Payment struct {
	PaymentID       string
	CompanyID       string
	InvoiceID       string
	PaymentNumber   string
	Amount          decimal.Decimal
	Method          string
	Status          string
	PaymentDate     time.Time
	ReferenceNumber string
	RefundAmount    *decimal.Decimal
	Notes           string
	AuditFields
}

// PaymentAllocation is the row representation of the payment_allocations table.
type PaymentAllocation struct {
	AllocationID    string
	PaymentID       string
	InvoiceID       string
	AllocatedAmount decimal.Decimal
	AuditFields
}
