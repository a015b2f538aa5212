package mapping

import (
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/models"
)

// ToModelInvoice converts a domain invoice to its row representation.
func ToModelInvoice(inv domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         inv.InvoiceID,
		CompanyID:         inv.CompanyID,
		InvoiceNumber:     inv.InvoiceNumber,
		CustomerName:      inv.CustomerName,
		CustomerTRN:       inv.CustomerTRN,
		SupplierTRN:       inv.SupplierTRN,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		VatType:           string(inv.VatType),
		Status:            string(inv.Status),
		Subtotal:          inv.Subtotal,
		TaxableSubtotal:   inv.TaxableSubtotal,
		ZeroRatedSubtotal: inv.ZeroRatedSubtotal,
		ExemptSubtotal:    inv.ExemptSubtotal,
		DiscountTotal:     inv.DiscountTotal,
		VatAmount:         inv.VatAmount,
		TotalWithVAT:      inv.TotalWithVAT,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		AuditFields:       toModelAuditFields(inv.AuditFields),
	}
}

// ToDomainInvoice converts an invoice row to its domain representation.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.InvoiceID,
		CompanyID:         m.CompanyID,
		InvoiceNumber:     m.InvoiceNumber,
		CustomerName:      m.CustomerName,
		CustomerTRN:       m.CustomerTRN,
		SupplierTRN:       m.SupplierTRN,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		VatType:           domain.VatType(m.VatType),
		Status:            domain.InvoiceStatus(m.Status),
		Subtotal:          m.Subtotal,
		TaxableSubtotal:   m.TaxableSubtotal,
		ZeroRatedSubtotal: m.ZeroRatedSubtotal,
		ExemptSubtotal:    m.ExemptSubtotal,
		DiscountTotal:     m.DiscountTotal,
		VatAmount:         m.VatAmount,
		TotalWithVAT:      m.TotalWithVAT,
		PaidAmount:        m.PaidAmount,
		OutstandingAmount: m.OutstandingAmount,
		AuditFields:       toDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain invoice item to its row representation.
func ToModelInvoiceItem(item domain.InvoiceItem) models.InvoiceItem {
	var vatType *string
	if item.VatType != nil {
		s := string(*item.VatType)
		vatType = &s
	}
	return models.InvoiceItem{
		ItemID:      item.ItemID,
		InvoiceID:   item.InvoiceID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Discount:    item.Discount,
		VatType:     vatType,
		Subtotal:    item.Subtotal,
		VatAmount:   item.VatAmount,
		LineTotal:   item.LineTotal,
	}
}

// ToDomainInvoiceItem converts an invoice item row to its domain representation.
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	var vatType *domain.VatType
	if m.VatType != nil {
		t := domain.VatType(*m.VatType)
		vatType = &t
	}
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Discount:    m.Discount,
		VatType:     vatType,
		Subtotal:    m.Subtotal,
		VatAmount:   m.VatAmount,
		LineTotal:   m.LineTotal,
	}
}

// ToDomainInvoiceItemSlice converts invoice item rows to domain items.
func ToDomainInvoiceItemSlice(ms []models.InvoiceItem) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainInvoiceItem(m)
	}
	return items
}
