package mapping

import (
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/models"
)

// ToModelVatFiling converts a domain filing to its row representation.
func ToModelVatFiling(f domain.VatFiling) models.VatFiling {
	return models.VatFiling{
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
		AuditFields:    toModelAuditFields(f.AuditFields),
	}
}

// ToDomainVatFiling converts a filing row to its domain representation.
func ToDomainVatFiling(m models.VatFiling) domain.VatFiling {
	return domain.VatFiling{
		FilingID:       m.FilingID,
		CompanyID:      m.CompanyID,
		FilingPeriod:   m.FilingPeriod,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		Status:         domain.FilingStatus(m.Status),
		TaxableSales:   m.TaxableSales,
		ZeroRatedSales: m.ZeroRatedSales,
		ExemptSales:    m.ExemptSales,
		VatCollected:   m.VatCollected,
		AdjustmentVat:  m.AdjustmentVat,
		NetVatPayable:  m.NetVatPayable,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

// ToModelVatFilingItem converts a domain filing item to its row representation.
func ToModelVatFilingItem(item domain.VatFilingItem) models.VatFilingItem {
	return models.VatFilingItem{
		FilingItemID:    item.FilingItemID,
		FilingID:        item.FilingID,
		InvoiceID:       item.InvoiceID,
		InvoiceNumber:   item.InvoiceNumber,
		IssueDate:       item.IssueDate,
		TaxableAmount:   item.TaxableAmount,
		ZeroRatedAmount: item.ZeroRatedAmount,
		ExemptAmount:    item.ExemptAmount,
		VatAmount:       item.VatAmount,
	}
}

// ToDomainVatFilingItem converts a filing item row to its domain representation.
func ToDomainVatFilingItem(m models.VatFilingItem) domain.VatFilingItem {
	return domain.VatFilingItem{
		FilingItemID:    m.FilingItemID,
		FilingID:        m.FilingID,
		InvoiceID:       m.InvoiceID,
		InvoiceNumber:   m.InvoiceNumber,
		IssueDate:       m.IssueDate,
		TaxableAmount:   m.TaxableAmount,
		ZeroRatedAmount: m.ZeroRatedAmount,
		ExemptAmount:    m.ExemptAmount,
		VatAmount:       m.VatAmount,
	}
}

// ToDomainVatFilingItemSlice converts filing item rows to domain items.
func ToDomainVatFilingItemSlice(ms []models.VatFilingItem) []domain.VatFilingItem {
	items := make([]domain.VatFilingItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainVatFilingItem(m)
	}
	return items
}

// ToModelVatAdjustment converts a domain adjustment to its row representation.
func ToModelVatAdjustment(a domain.VatAdjustment) models.VatAdjustment {
	return models.VatAdjustment{
		AdjustmentID:   a.AdjustmentID,
		CompanyID:      a.CompanyID,
		Type:           string(a.Type),
		Amount:         a.Amount,
		VatImpact:      a.VatImpact,
		Reason:         a.Reason,
		AdjustmentDate: a.AdjustmentDate,
		AuditFields:    toModelAuditFields(a.AuditFields),
	}
}

// ToDomainVatAdjustment converts an adjustment row to its domain representation.
func ToDomainVatAdjustment(m models.VatAdjustment) domain.VatAdjustment {
	return domain.VatAdjustment{
		AdjustmentID:   m.AdjustmentID,
		CompanyID:      m.CompanyID,
		Type:           domain.AdjustmentType(m.Type),
		Amount:         m.Amount,
		VatImpact:      m.VatImpact,
		Reason:         m.Reason,
		AdjustmentDate: m.AdjustmentDate,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVatSettings converts a settings row to its domain representation.
func ToDomainVatSettings(m models.VatSettings) domain.VatSettings {
	return domain.VatSettings{
		CompanyID:       m.CompanyID,
		TRN:             m.TRN,
		VatEnabled:      m.VatEnabled,
		FilingFrequency: domain.FilingFrequency(m.FilingFrequency),
		FilingDay:       m.FilingDay,
		AuditFields:     toDomainAuditFields(m.AuditFields),
	}
}
