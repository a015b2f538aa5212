package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilingStatus tracks a VAT filing through its administrative lifecycle.
// Status progresses independently of live invoice changes; the snapshot
// itself is never recomputed after creation.
type FilingStatus string

const (
	FilingDraft     FilingStatus = "DRAFT"
	FilingSubmitted FilingStatus = "SUBMITTED"
	FilingAccepted  FilingStatus = "ACCEPTED"
	FilingRejected  FilingStatus = "REJECTED"
)

// ValidFilingTransition reports whether a filing status change is allowed.
func ValidFilingTransition(from, to FilingStatus) bool {
	switch from {
	case FilingDraft:
		return to == FilingSubmitted
	case FilingSubmitted:
		return to == FilingAccepted || to == FilingRejected
	}
	return false
}

// VatFiling is an immutable point-in-time snapshot of a period's VAT position.
type VatFiling struct {
	FilingID     string       `json:"filingID"`  // Primary Key (UUID)
	CompanyID    string       `json:"companyID"` // Tenant scope
	FilingPeriod string       `json:"filingPeriod"` // Derived key, unique per company
	PeriodStart  time.Time    `json:"periodStart"`
	PeriodEnd    time.Time    `json:"periodEnd"`
	Status       FilingStatus `json:"status"`

	TaxableSales  decimal.Decimal `json:"taxableSales"`
	ZeroRatedSales decimal.Decimal `json:"zeroRatedSales"`
	ExemptSales   decimal.Decimal `json:"exemptSales"`
	VatCollected  decimal.Decimal `json:"vatCollected"`
	AdjustmentVat decimal.Decimal `json:"adjustmentVat"`
	NetVatPayable decimal.Decimal `json:"netVatPayable"`

	Items []VatFilingItem `json:"items,omitempty"` // One row per contributing invoice
	AuditFields
}

// VatFilingItem records one invoice's contribution inside a filing snapshot.
type VatFilingItem struct {
	FilingItemID   string          `json:"filingItemID"` // Primary Key (UUID)
	FilingID       string          `json:"filingID"`     // FK -> VatFiling.filingID
	InvoiceID      string          `json:"invoiceID"`    // FK -> Invoice.invoiceID
	InvoiceNumber  string          `json:"invoiceNumber"`
	IssueDate      time.Time       `json:"issueDate"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	ZeroRatedAmount decimal.Decimal `json:"zeroRatedAmount"`
	ExemptAmount   decimal.Decimal `json:"exemptAmount"`
	VatAmount      decimal.Decimal `json:"vatAmount"`
}

// AdjustmentType distinguishes manual corrections to a filing period.
type AdjustmentType string

const (
	AdjustmentCredit AdjustmentType = "CREDIT"
	AdjustmentDebit  AdjustmentType = "DEBIT"
)

// ValidAdjustmentType reports whether the given value is a known adjustment type.
func ValidAdjustmentType(t AdjustmentType) bool {
	return t == AdjustmentCredit || t == AdjustmentDebit
}

// VatAdjustment is a manual correction contributing to a filing period.
// Immutable once created.
type VatAdjustment struct {
	AdjustmentID   string          `json:"adjustmentID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`    // Tenant scope
	Type           AdjustmentType  `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	VatImpact      decimal.Decimal `json:"vatImpact"` // Signed effect on net VAT payable
	Reason         string          `json:"reason"`
	AdjustmentDate time.Time       `json:"adjustmentDate"`
	AuditFields
}

// VatSummary is the live (non-snapshot) aggregation of a period's VAT position.
type VatSummary struct {
	PeriodStart    time.Time       `json:"periodStart"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	TaxableSales   decimal.Decimal `json:"taxableSales"`
	ZeroRatedSales decimal.Decimal `json:"zeroRatedSales"`
	ExemptSales    decimal.Decimal `json:"exemptSales"`
	VatCollected   decimal.Decimal `json:"vatCollected"`
	AdjustmentVat  decimal.Decimal `json:"adjustmentVat"`
	NetVatPayable  decimal.Decimal `json:"netVatPayable"`
	InvoiceCount   int             `json:"invoiceCount"`
}
