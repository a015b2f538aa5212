package mapping

import (
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/models"
)

// ToModelPayment converts a domain payment to its row representation.
func ToModelPayment(p domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       p.PaymentID,
		CompanyID:       p.CompanyID,
		InvoiceID:       p.InvoiceID,
		PaymentNumber:   p.PaymentNumber,
		Amount:          p.Amount,
		Method:          string(p.Method),
		Status:          string(p.Status),
		PaymentDate:     p.PaymentDate,
		ReferenceNumber: p.ReferenceNumber,
		RefundAmount:    p.RefundAmount,
		Notes:           p.Notes,
		AuditFields:     toModelAuditFields(p.AuditFields),
	}
}

// ToDomainPayment converts a payment row to its domain representation.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		CompanyID:       m.CompanyID,
		InvoiceID:       m.InvoiceID,
		PaymentNumber:   m.PaymentNumber,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		Status:          domain.PaymentStatus(m.Status),
		PaymentDate:     m.PaymentDate,
		ReferenceNumber: m.ReferenceNumber,
		RefundAmount:    m.RefundAmount,
		Notes:           m.Notes,
		AuditFields:     toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts payment rows to domain payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	payments := make([]domain.Payment, len(ms))
	for i, m := range ms {
		payments[i] = ToDomainPayment(m)
	}
	return payments
}

// ToModelAllocation converts a domain allocation to its row representation.
func ToModelAllocation(a domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID:    a.AllocationID,
		PaymentID:       a.PaymentID,
		InvoiceID:       a.InvoiceID,
		AllocatedAmount: a.AllocatedAmount,
		AuditFields:     toModelAuditFields(a.AuditFields),
	}
}

// ToDomainAllocation converts an allocation row to its domain representation.
func ToDomainAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID:    m.AllocationID,
		PaymentID:       m.PaymentID,
		InvoiceID:       m.InvoiceID,
		AllocatedAmount: m.AllocatedAmount,
		AuditFields:     toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts allocation rows to domain allocations.
func ToDomainAllocationSlice(ms []models.PaymentAllocation) []domain.PaymentAllocation {
	allocations := make([]domain.PaymentAllocation, len(ms))
	for i, m := range ms {
		allocations[i] = ToDomainAllocation(m)
	}
	return allocations
}
