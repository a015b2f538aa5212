package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatFiling is the row representation of the vat_filings table.
type VatFiling struct {
	FilingID     string
	CompanyID    string
	FilingPeriod string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Status       string

	TaxableSales   decimal.Decimal
	ZeroRatedSales decimal.Decimal
	ExemptSales    decimal.Decimal
	VatCollected   decimal.Decimal
	AdjustmentVat  decimal.Decimal
	NetVatPayable  decimal.Decimal

	AuditFields
}

// VatFilingItem is the row representation of the vat_filing_items table.
type VatFilingItem struct {
	FilingItemID    string
	FilingID        string
	InvoiceID       string
	InvoiceNumber   string
	IssueDate       time.Time
	TaxableAmount   decimal.Decimal
	ZeroRatedAmount decimal.Decimal
	ExemptAmount    decimal.Decimal
	VatAmount       decimal.Decimal
}

// VatAdjustment is the row representation of the vat_adjustments table.
type VatAdjustment struct {
	AdjustmentID   string
	CompanyID      string
	Type           string
	Amount         decimal.Decimal
	VatImpact      decimal.Decimal
	Reason         string
	AdjustmentDate time.Time
	AuditFields
}

// VatSettings is the row representation of the vat_settings table.
type VatSettings struct {
	CompanyID       string
	TRN             string
	VatEnabled      bool
	FilingFrequency string
	FilingDay       int
	AuditFields
}
