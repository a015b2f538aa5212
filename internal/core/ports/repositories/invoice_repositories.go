package repositories

import (
	"context"
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByCompany retrieves invoices for a company, optionally
	// filtered by issue-date range, newest first.
	ListInvoicesByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]domain.Invoice, error)

	// ListInvoicesByIssueDateRange retrieves all non-cancelled invoices whose
	// issue date falls in [from, to]. Used by VAT filing aggregation.
	ListInvoicesByIssueDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its items, assigning the next
	// sequential invoice number for the company's year within the same
	// transaction. Returns the invoice with the number populated.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) (*domain.Invoice, error)

	// UpdateInvoiceFinancials replaces an invoice's breakdown fields and
	// items in one transaction. Paid/outstanding amounts are not touched
	// here; the payment ledger owns them.
	UpdateInvoiceFinancials(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// UpdateInvoiceStatus sets the invoice status.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
