package dto

import (
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest defines one line item of an invoice request.
type CreateInvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
	// VatType overrides the invoice default when set.
	VatType *string `json:"vatType" binding:"omitempty,oneof=STANDARD ZERO_RATED EXEMPT"`
}

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	CustomerName   string                     `json:"customerName" binding:"required"`
	CustomerTRN    string                     `json:"customerTRN" binding:"omitempty,trn"`
	IssueDate      time.Time                  `json:"issueDate" binding:"required"`
	DueDate        time.Time                  `json:"dueDate" binding:"required"`
	VatType        string                     `json:"vatType" binding:"omitempty,oneof=STANDARD ZERO_RATED EXEMPT"`
	Discount       decimal.Decimal            `json:"discount"`
	Items          []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest defines the data for replacing a draft invoice's inputs.
type UpdateInvoiceRequest struct {
	CustomerName   *string                    `json:"customerName"`
	CustomerTRN    *string                    `json:"customerTRN" binding:"omitempty,trn"`
	IssueDate      *time.Time                 `json:"issueDate"`
	DueDate        *time.Time                 `json:"dueDate"`
	VatType        *string                    `json:"vatType" binding:"omitempty,oneof=STANDARD ZERO_RATED EXEMPT"`
	Discount       *decimal.Decimal           `json:"discount"`
	Items          []CreateInvoiceItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// UpdateInvoiceStatusRequest defines an explicit lifecycle transition.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SENT VIEWED CANCELLED"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Limit  int        `form:"limit,default=20"`
	Offset int        `form:"offset,default=0"`
}

// InvoiceItemResponse defines the data returned for an invoice line item.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	VatType     string          `json:"vatType"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VatAmount   decimal.Decimal `json:"vatAmount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID         string                `json:"invoiceID"`
	InvoiceNumber     string                `json:"invoiceNumber"`
	CompanyID         string                `json:"companyID"`
	CustomerName      string                `json:"customerName"`
	CustomerTRN       string                `json:"customerTRN,omitempty"`
	SupplierTRN       string                `json:"supplierTRN,omitempty"`
	VatType           string                `json:"vatType"`
	Status            string                `json:"status"`
	IssueDate         time.Time             `json:"issueDate"`
	DueDate           time.Time             `json:"dueDate"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	TaxableSubtotal   decimal.Decimal       `json:"taxableSubtotal"`
	ZeroRatedSubtotal decimal.Decimal       `json:"zeroRatedSubtotal"`
	ExemptSubtotal    decimal.Decimal       `json:"exemptSubtotal"`
	DiscountTotal     decimal.Decimal       `json:"discountTotal"`
	VatAmount         decimal.Decimal       `json:"vatAmount"`
	TotalWithVAT      decimal.Decimal       `json:"totalWithVAT"`
	PaidAmount        decimal.Decimal       `json:"paidAmount"`
	OutstandingAmount decimal.Decimal       `json:"outstandingAmount"`
	Items             []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to InvoiceItemResponse DTO.
func ToInvoiceItemResponse(item *domain.InvoiceItem, defaultVatType domain.VatType) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:      item.ItemID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Discount:    item.Discount,
		VatType:     string(item.EffectiveVatType(defaultVatType)),
		Subtotal:    item.Subtotal,
		VatAmount:   item.VatAmount,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToInvoiceItemResponse(&inv.Items[i], inv.VatType)
	}
	return InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		InvoiceNumber:     inv.InvoiceNumber,
		CompanyID:         inv.CompanyID,
		CustomerName:      inv.CustomerName,
		CustomerTRN:       inv.CustomerTRN,
		SupplierTRN:       inv.SupplierTRN,
		VatType:           string(inv.VatType),
		Status:            string(inv.Status),
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		Subtotal:          inv.Subtotal,
		TaxableSubtotal:   inv.TaxableSubtotal,
		ZeroRatedSubtotal: inv.ZeroRatedSubtotal,
		ExemptSubtotal:    inv.ExemptSubtotal,
		DiscountTotal:     inv.DiscountTotal,
		VatAmount:         inv.VatAmount,
		TotalWithVAT:      inv.TotalWithVAT,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		Items:             items,
		CreatedAt:         inv.CreatedAt,
	}
}

// ToListInvoicesResponse converts a slice of domain.Invoice to the list DTO.
func ToListInvoicesResponse(invoices []domain.Invoice) *ListInvoicesResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return &ListInvoicesResponse{Invoices: responses}
}
