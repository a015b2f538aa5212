package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatType classifies a supply for UAE VAT purposes.
type VatType string

const (
	VatStandard  VatType = "STANDARD"   // taxed at 5%
	VatZeroRated VatType = "ZERO_RATED" // 0% but reportable
	VatExempt    VatType = "EXEMPT"     // not reportable as taxable supply
)

// ValidVatType reports whether the given value is a known VAT type.
func ValidVatType(t VatType) bool {
	switch t {
	case VatStandard, VatZeroRated, VatExempt:
		return true
	}
	return false
}

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoiceViewed    InvoiceStatus = "VIEWED"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice represents a sales document and its full VAT breakdown.
// Paid/outstanding amounts and payment-derived status are owned by the
// payment ledger; everything else by the invoice flows.
type Invoice struct {
	InvoiceID     string        `json:"invoiceID"`     // Primary Key (UUID)
	CompanyID     string        `json:"companyID"`     // Tenant scope
	InvoiceNumber string        `json:"invoiceNumber"` // Sequential per company per year (INV-<year>-<seq>)
	CustomerName  string        `json:"customerName"`
	CustomerTRN   string        `json:"customerTRN"` // Nullable
	SupplierTRN   string        `json:"supplierTRN"` // Required when VAT enabled and taxable > 0
	IssueDate     time.Time     `json:"issueDate"`
	DueDate       time.Time     `json:"dueDate"`
	VatType       VatType       `json:"vatType"` // Invoice-level default for lines
	Status        InvoiceStatus `json:"status"`

	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxableSubtotal   decimal.Decimal `json:"taxableSubtotal"`
	ZeroRatedSubtotal decimal.Decimal `json:"zeroRatedSubtotal"`
	ExemptSubtotal    decimal.Decimal `json:"exemptSubtotal"`
	DiscountTotal     decimal.Decimal `json:"discountTotal"`
	VatAmount         decimal.Decimal `json:"vatAmount"`
	TotalWithVAT      decimal.Decimal `json:"totalWithVAT"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`

	Items []InvoiceItem `json:"items,omitempty"` // Often loaded separately
	AuditFields
}

// InvoiceItem represents a single line on an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`    // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> Invoice.invoiceID
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"` // Line-level discount, absolute amount
	VatType     *VatType        `json:"vatType"`  // Nil -> invoice default applies
	Subtotal    decimal.Decimal `json:"subtotal"` // quantity*unitPrice - discount
	VatAmount   decimal.Decimal `json:"vatAmount"`
	LineTotal   decimal.Decimal `json:"lineTotal"` // Subtotal + VatAmount, for receipt rendering
}

// EffectiveVatType resolves the line's VAT type against the invoice default.
func (i InvoiceItem) EffectiveVatType(invoiceDefault VatType) VatType {
	if i.VatType != nil {
		return *i.VatType
	}
	return invoiceDefault
}
