package dto

import (
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVatFilingRequest defines the period to freeze into a filing.
type CreateVatFilingRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required" time_format:"2006-01-02"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required" time_format:"2006-01-02"`
}

// UpdateVatFilingStatusRequest defines a filing lifecycle transition.
type UpdateVatFilingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SUBMITTED ACCEPTED REJECTED"`
}

// CreateVatAdjustmentRequest defines a manual VAT correction.
type CreateVatAdjustmentRequest struct {
	Type           string          `json:"type" binding:"required,oneof=CREDIT DEBIT"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Reason         string          `json:"reason" binding:"required"`
	AdjustmentDate time.Time       `json:"adjustmentDate" binding:"required"`
}

// VatSummaryParams defines query parameters for the live VAT summary.
type VatSummaryParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// ListVatFilingsParams defines query parameters for listing filings.
type ListVatFilingsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// VatFilingItemResponse defines one invoice's contribution inside a filing.
type VatFilingItemResponse struct {
	FilingItemID    string          `json:"filingItemID"`
	InvoiceID       string          `json:"invoiceID"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	IssueDate       time.Time       `json:"issueDate"`
	TaxableAmount   decimal.Decimal `json:"taxableAmount"`
	ZeroRatedAmount decimal.Decimal `json:"zeroRatedAmount"`
	ExemptAmount    decimal.Decimal `json:"exemptAmount"`
	VatAmount       decimal.Decimal `json:"vatAmount"`
}

// VatFilingResponse defines the data returned for a filing snapshot.
type VatFilingResponse struct {
	FilingID       string                  `json:"filingID"`
	CompanyID      string                  `json:"companyID"`
	FilingPeriod   string                  `json:"filingPeriod"`
	PeriodStart    time.Time               `json:"periodStart"`
	PeriodEnd      time.Time               `json:"periodEnd"`
	Status         string                  `json:"status"`
	TaxableSales   decimal.Decimal         `json:"taxableSales"`
	ZeroRatedSales decimal.Decimal         `json:"zeroRatedSales"`
	ExemptSales    decimal.Decimal         `json:"exemptSales"`
	VatCollected   decimal.Decimal         `json:"vatCollected"`
	AdjustmentVat  decimal.Decimal         `json:"adjustmentVat"`
	NetVatPayable  decimal.Decimal         `json:"netVatPayable"`
	Items          []VatFilingItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ListVatFilingsResponse wraps the list of filings.
type ListVatFilingsResponse struct {
	Filings []VatFilingResponse `json:"filings"`
}

// VatAdjustmentResponse defines the data returned for an adjustment.
type VatAdjustmentResponse struct {
	AdjustmentID   string          `json:"adjustmentID"`
	CompanyID      string          `json:"companyID"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	VatImpact      decimal.Decimal `json:"vatImpact"`
	Reason         string          `json:"reason"`
	AdjustmentDate time.Time       `json:"adjustmentDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// VatSummaryResponse defines the live VAT position for a period.
type VatSummaryResponse struct {
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

// ToVatFilingItemResponse converts a domain.VatFilingItem to its DTO.
func ToVatFilingItemResponse(item *domain.VatFilingItem) VatFilingItemResponse {
	return VatFilingItemResponse{
		FilingItemID:    item.FilingItemID,
		InvoiceID:       item.InvoiceID,
		InvoiceNumber:   item.InvoiceNumber,
		IssueDate:       item.IssueDate,
		TaxableAmount:   item.TaxableAmount,
		ZeroRatedAmount: item.ZeroRatedAmount,
		ExemptAmount:    item.ExemptAmount,
		VatAmount:       item.VatAmount,
	}
}

// ToVatFilingResponse converts a domain.VatFiling to VatFilingResponse DTO.
func ToVatFilingResponse(f *domain.VatFiling) VatFilingResponse {
	items := make([]VatFilingItemResponse, len(f.Items))
	for i := range f.Items {
		items[i] = ToVatFilingItemResponse(&f.Items[i])
	}
	return VatFilingResponse{
		FilingID:       f.FilingID,
		CompanyID:      f.CompanyID,
		FilingPeriod:   f.FilingPeriod,
		PeriodStart:    f.PeriodStart,
		PeriodEnd:      f.PeriodEnd,
		Status:         string(f.Status),
		TaxableSales:   f.TaxableSales,
		ZeroRatedSales: f.ZeroRatedSales,
		ExemptSales:    f.ExemptSales,
		VatCollected:   f.VatCollected,
		AdjustmentVat:  f.AdjustmentVat,
		NetVatPayable:  f.NetVatPayable,
		Items:          items,
		CreatedAt:      f.CreatedAt,
	}
}

// ToListVatFilingsResponse converts a slice of domain.VatFiling to the list DTO.
func ToListVatFilingsResponse(filings []domain.VatFiling) *ListVatFilingsResponse {
	responses := make([]VatFilingResponse, len(filings))
	for i := range filings {
		responses[i] = ToVatFilingResponse(&filings[i])
	}
	return &ListVatFilingsResponse{Filings: responses}
}

// ToVatAdjustmentResponse converts a domain.VatAdjustment to its DTO.
func ToVatAdjustmentResponse(a *domain.VatAdjustment) VatAdjustmentResponse {
	return VatAdjustmentResponse{
		AdjustmentID:   a.AdjustmentID,
		CompanyID:      a.CompanyID,
		Type:           string(a.Type),
		Amount:         a.Amount,
		VatImpact:      a.VatImpact,
		Reason:         a.Reason,
		AdjustmentDate: a.AdjustmentDate,
		CreatedAt:      a.CreatedAt,
	}
}

// ToVatSummaryResponse converts a domain.VatSummary to its DTO.
func ToVatSummaryResponse(s *domain.VatSummary) VatSummaryResponse {
	return VatSummaryResponse{
		PeriodStart:    s.PeriodStart,
		PeriodEnd:      s.PeriodEnd,
		TaxableSales:   s.TaxableSales,
		ZeroRatedSales: s.ZeroRatedSales,
		ExemptSales:    s.ExemptSales,
		VatCollected:   s.VatCollected,
		AdjustmentVat:  s.AdjustmentVat,
		NetVatPayable:  s.NetVatPayable,
		InvoiceCount:   s.InvoiceCount,
	}
}
