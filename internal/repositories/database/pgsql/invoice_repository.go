package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	"github.com/qaydhq/qayd_backend/internal/models"
	"github.com/qaydhq/qayd_backend/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, company_id, invoice_number, customer_name, customer_trn, supplier_trn,
	issue_date, due_date, vat_type, status,
	subtotal, taxable_subtotal, zero_rated_subtotal, exempt_subtotal, discount_total,
	vat_amount, total_with_vat, paid_amount, outstanding_amount,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.InvoiceNumber,
		&m.CustomerName,
		&m.CustomerTRN,
		&m.SupplierTRN,
		&m.IssueDate,
		&m.DueDate,
		&m.VatType,
		&m.Status,
		&m.Subtotal,
		&m.TaxableSubtotal,
		&m.ZeroRatedSubtotal,
		&m.ExemptSubtotal,
		&m.DiscountTotal,
		&m.VatAmount,
		&m.TotalWithVAT,
		&m.PaidAmount,
		&m.OutstandingAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveInvoice persists a new invoice with its items, assigning the next
// sequential invoice number for the company's year in the same transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextSequenceNumber(ctx, tx, "invoice_sequences", "INV", invoice.CompanyID, invoice.IssueDate.Year())
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = number

	m := mapping.ToModelInvoice(invoice)
	insertQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.InvoiceID, m.CompanyID, m.InvoiceNumber, m.CustomerName, m.CustomerTRN, m.SupplierTRN,
		m.IssueDate, m.DueDate, m.VatType, m.Status,
		m.Subtotal, m.TaxableSubtotal, m.ZeroRatedSubtotal, m.ExemptSubtotal, m.DiscountTotal,
		m.VatAmount, m.TotalWithVAT, m.PaidAmount, m.OutstandingAmount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	if err := insertInvoiceItems(ctx, tx, items); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func insertInvoiceItems(ctx context.Context, tx pgx.Tx, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (item_id, invoice_id, description, quantity, unit_price, discount, vat_type, subtotal, vat_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, item := range items {
		mi := mapping.ToModelInvoiceItem(item)
		batch.Queue(itemQuery,
			mi.ItemID, mi.InvoiceID, mi.Description, mi.Quantity, mi.UnitPrice,
			mi.Discount, mi.VatType, mi.Subtotal, mi.VatAmount, mi.LineTotal,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice items", err)
	}
	return nil
}

// UpdateInvoiceFinancials replaces an invoice's breakdown fields and items.
// Paid and outstanding amounts are owned by the payment ledger and are not
// written here.
func (r *PgxInvoiceRepository) UpdateInvoiceFinancials(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	updateQuery := `
		UPDATE invoices SET
			customer_name = $2, customer_trn = $3, supplier_trn = $4,
			issue_date = $5, due_date = $6, vat_type = $7,
			subtotal = $8, taxable_subtotal = $9, zero_rated_subtotal = $10,
			exempt_subtotal = $11, discount_total = $12, vat_amount = $13,
			total_with_vat = $14, outstanding_amount = GREATEST($14 - paid_amount, 0),
			last_updated_at = $15, last_updated_by = $16
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.InvoiceID, m.CustomerName, m.CustomerTRN, m.SupplierTRN,
		m.IssueDate, m.DueDate, m.VatType,
		m.Subtotal, m.TaxableSubtotal, m.ZeroRatedSubtotal,
		m.ExemptSubtotal, m.DiscountTotal, m.VatAmount,
		m.TotalWithVAT, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to clear invoice items for "+m.InvoiceID, err)
	}
	if err := insertInvoiceItems(ctx, tx, items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus sets the invoice status.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceByID retrieves an invoice with its items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}

	items, err := r.findItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	inv := mapping.ToDomainInvoice(*m)
	inv.Items = items
	return &inv, nil
}

func (r *PgxInvoiceRepository) findItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `
		SELECT item_id, invoice_id, description, quantity, unit_price, discount, vat_type, subtotal, vat_amount, line_total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	var modelItems []models.InvoiceItem
	for rows.Next() {
		var mi models.InvoiceItem
		if err := rows.Scan(
			&mi.ItemID, &mi.InvoiceID, &mi.Description, &mi.Quantity, &mi.UnitPrice,
			&mi.Discount, &mi.VatType, &mi.Subtotal, &mi.VatAmount, &mi.LineTotal,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for invoice "+invoiceID, err)
		}
		modelItems = append(modelItems, mi)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading item rows for invoice "+invoiceID, err)
	}
	return mapping.ToDomainInvoiceItemSlice(modelItems), nil
}

// ListInvoicesByCompany retrieves a page of a company's invoices, optionally
// filtered by issue date, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR issue_date >= $2)
		  AND ($3::timestamptz IS NULL OR issue_date <= $3)
		ORDER BY issue_date DESC, invoice_number DESC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list invoices for company "+companyID, err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// ListInvoicesByIssueDateRange retrieves all non-cancelled invoices whose
// issue date falls in [from, to]. Used by VAT filing aggregation.
func (r *PgxInvoiceRepository) ListInvoicesByIssueDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		  AND issue_date >= $2 AND issue_date <= $3
		  AND status != 'CANCELLED'
		ORDER BY issue_date, invoice_number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list invoices by period for company "+companyID, err)
	}
	defer rows.Close()

	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading invoice rows", err)
	}
	return invoices, nil
}
