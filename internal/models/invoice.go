package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the row representation of the invoices table.
type Invoice struct {
	InvoiceID     string
	CompanyID     string
	InvoiceNumber string
	CustomerName  string
	CustomerTRN   string
	SupplierTRN   string
	IssueDate     time.Time
	DueDate       time.Time
	VatType       string
	Status        string

	Subtotal          decimal.Decimal
	TaxableSubtotal   decimal.Decimal
	ZeroRatedSubtotal decimal.Decimal
	ExemptSubtotal    decimal.Decimal
	DiscountTotal     decimal.Decimal
	VatAmount         decimal.Decimal
	TotalWithVAT      decimal.Decimal
	PaidAmount        decimal.Decimal
	OutstandingAmount decimal.Decimal

	AuditFields
}

// InvoiceItem is the row representation of the invoice_items table.
type InvoiceItem struct {
	ItemID      string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	VatType     *string // NULL -> invoice default
	Subtotal    decimal.Decimal
	VatAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}
