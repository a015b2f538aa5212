package services

import (
	"context"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice with its line items.
	// The returned status reflects overdue derivation as of the read.
	GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of a company's invoices.
	ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice computes the VAT breakdown, assigns the next invoice
	// number and persists a new draft invoice with its items.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice replaces an invoice's inputs and recomputes its VAT
	// breakdown. Financial inputs may only change while no payment is
	// allocated to the invoice; paid and cancelled invoices are frozen.
	UpdateInvoice(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// UpdateInvoiceStatus applies an explicit lifecycle transition
	// (send, mark viewed, cancel).
	UpdateInvoiceStatus(ctx context.Context, companyID string, invoiceID string, newStatus domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
