package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	"github.com/qaydhq/qayd_backend/internal/models"
	"github.com/qaydhq/qayd_backend/internal/utils/ledger"
	"github.com/qaydhq/qayd_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `
	payment_id, company_id, invoice_id, payment_number, amount, method, status,
	payment_date, reference_number, refund_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.CompanyID,
		&m.InvoiceID,
		&m.PaymentNumber,
		&m.Amount,
		&m.Method,
		&m.Status,
		&m.PaymentDate,
		&m.ReferenceNumber,
		&m.RefundAmount,
		&m.Notes,
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

// lockedInvoice is the slice of the invoice row the ledger mutations need.
type lockedInvoice struct {
	InvoiceID    string
	CompanyID    string
	Status       string
	TotalWithVAT decimal.Decimal
	Outstanding  decimal.Decimal
}

// lockInvoiceRow acquires a row lock on the invoice so the balance check and
// the subsequent recalculation are serialized against concurrent payments.
func lockInvoiceRow(ctx context.Context, tx pgx.Tx, invoiceID string) (*lockedInvoice, error) {
	query := `
		SELECT invoice_id, company_id, status, total_with_vat, outstanding_amount
		FROM invoices
		WHERE invoice_id = $1
		FOR UPDATE;
	`
	var inv lockedInvoice
	err := tx.QueryRow(ctx, query, invoiceID).Scan(
		&inv.InvoiceID, &inv.CompanyID, &inv.Status, &inv.TotalWithVAT, &inv.Outstanding,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	return &inv, nil
}

// CreatePaymentWithAllocation records a pending payment and its allocation
// within one transaction: the invoice row is locked, the amount is checked
// against the outstanding balance, the sequential payment number is assigned,
// and the invoice's paid/outstanding amounts are recalculated before commit.
func (r *PgxPaymentRepository) CreatePaymentWithAllocation(ctx context.Context, payment domain.Payment, allocation domain.PaymentAllocation) (*domain.Payment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	invoice, err := lockInvoiceRow(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	if payment.Amount.GreaterThan(invoice.Outstanding.Add(ledger.Epsilon)) {
		return nil, fmt.Errorf("%w: payment amount %s exceeds outstanding balance %s",
			apperrors.ErrValidation, payment.Amount, invoice.Outstanding)
	}

	number, err := nextSequenceNumber(ctx, tx, "payment_sequences", "PAY", payment.CompanyID, payment.PaymentDate.Year())
	if err != nil {
		return nil, err
	}
	payment.PaymentNumber = number

	m := mapping.ToModelPayment(payment)
	insertPayment := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertPayment,
		m.PaymentID, m.CompanyID, m.InvoiceID, m.PaymentNumber, m.Amount, m.Method, m.Status,
		m.PaymentDate, m.ReferenceNumber, m.RefundAmount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	ma := mapping.ToModelAllocation(allocation)
	insertAllocation := `
		INSERT INTO payment_allocations (allocation_id, payment_id, invoice_id, allocated_amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertAllocation,
		ma.AllocationID, ma.PaymentID, ma.InvoiceID, ma.AllocatedAmount,
		ma.CreatedAt, ma.CreatedBy, ma.LastUpdatedAt, ma.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert allocation for payment "+m.PaymentID, err)
	}

	if err := recalcInvoiceInTx(ctx, tx, invoice, payment.CreatedBy, payment.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePaymentStatus transitions a payment and recalculates its invoice in
// the same transaction.
func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus domain.PaymentStatus, refundAmount *decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Payment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var invoiceID string
	if err := tx.QueryRow(ctx, `SELECT invoice_id FROM payments WHERE payment_id = $1;`, paymentID).Scan(&invoiceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}

	// Lock order is always invoice first, then payment rows, to avoid
	// deadlocks between concurrent ledger mutations.
	invoice, err := lockInvoiceRow(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE payments
		SET status = $2,
		    refund_amount = COALESCE($3, refund_amount),
		    last_updated_at = $4, last_updated_by = $5
		WHERE payment_id = $1
		RETURNING ` + paymentColumns + `;
	`
	m, err := scanPayment(tx.QueryRow(ctx, updateQuery, paymentID, string(newStatus), refundAmount, updatedAt, updatedBy))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update status for payment "+paymentID, err)
	}

	if err := recalcInvoiceInTx(ctx, tx, invoice, updatedBy, updatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

// RecalculateInvoiceAmounts re-derives an invoice's paid and outstanding
// amounts from its full allocation history in its own transaction.
func (r *PgxPaymentRepository) RecalculateInvoiceAmounts(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	invoice, err := lockInvoiceRow(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if err := recalcInvoiceInTx(ctx, tx, invoice, "system", time.Now().UTC()); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// recalcInvoiceInTx loads the locked invoice's full allocation history with
// the current status of each backing payment, reruns the shared
// recalculation, verifies the balance invariant and persists the result. The
// caller must already hold the invoice row lock.
func recalcInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice *lockedInvoice, updatedBy string, updatedAt time.Time) error {
	query := `
		SELECT a.allocation_id, a.payment_id, a.allocated_amount, p.status
		FROM payment_allocations a
		JOIN payments p ON p.payment_id = a.payment_id
		WHERE a.invoice_id = $1;
	`
	rows, err := tx.Query(ctx, query, invoice.InvoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load allocations for invoice "+invoice.InvoiceID, err)
	}
	defer rows.Close()

	allocations := []domain.PaymentAllocation{}
	paymentStatus := map[string]domain.PaymentStatus{}
	for rows.Next() {
		var alloc domain.PaymentAllocation
		var status string
		if err := rows.Scan(&alloc.AllocationID, &alloc.PaymentID, &alloc.AllocatedAmount, &status); err != nil {
			return apperrors.NewAppError(500, "failed to scan allocation row for invoice "+invoice.InvoiceID, err)
		}
		alloc.InvoiceID = invoice.InvoiceID
		allocations = append(allocations, alloc)
		paymentStatus[alloc.PaymentID] = domain.PaymentStatus(status)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed reading allocation rows for invoice "+invoice.InvoiceID, err)
	}
	rows.Close()

	paid, outstanding := ledger.RecalculateAmounts(invoice.TotalWithVAT, allocations, paymentStatus)
	if err := ledger.CheckBalanceInvariant(invoice.TotalWithVAT, paid, outstanding); err != nil {
		return err
	}
	newStatus := ledger.DeriveStatusAfterRecalc(domain.InvoiceStatus(invoice.Status), outstanding)

	updateQuery := `
		UPDATE invoices
		SET paid_amount = $2, outstanding_amount = $3, status = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, invoice.InvoiceID, paid, outstanding, string(newStatus), updatedAt, updatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to persist recalculated amounts for invoice "+invoice.InvoiceID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its unique identifier.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}
	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

// ListPaymentsByInvoiceID retrieves all payments against one invoice.
func (r *PgxPaymentRepository) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY payment_date DESC, payment_number DESC;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments for invoice "+invoiceID, err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListPaymentsByCompany retrieves a page of a company's payments, optionally
// filtered by payment date, newest first.
func (r *PgxPaymentRepository) ListPaymentsByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR payment_date >= $2)
		  AND ($3::timestamptz IS NULL OR payment_date <= $3)
		ORDER BY payment_date DESC, payment_number DESC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments for company "+companyID, err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading payment rows", err)
	}
	return payments, nil
}

// FindAllocationsByInvoiceID retrieves the full allocation history of an invoice.
func (r *PgxPaymentRepository) FindAllocationsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, payment_id, invoice_id, allocated_amount, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_allocations
		WHERE invoice_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list allocations for invoice "+invoiceID, err)
	}
	defer rows.Close()

	var modelAllocs []models.PaymentAllocation
	for rows.Next() {
		var ma models.PaymentAllocation
		if err := rows.Scan(
			&ma.AllocationID, &ma.PaymentID, &ma.InvoiceID, &ma.AllocatedAmount,
			&ma.CreatedAt, &ma.CreatedBy, &ma.LastUpdatedAt, &ma.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row for invoice "+invoiceID, err)
		}
		modelAllocs = append(modelAllocs, ma)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading allocation rows for invoice "+invoiceID, err)
	}
	return mapping.ToDomainAllocationSlice(modelAllocs), nil
}

// CountAllocationsByInvoiceID reports how many allocations reference an invoice.
func (r *PgxPaymentRepository) CountAllocationsByInvoiceID(ctx context.Context, invoiceID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_allocations WHERE invoice_id = $1;`, invoiceID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count allocations for invoice "+invoiceID, err)
	}
	return count, nil
}

// GetPaymentSummary aggregates payments in [from, to] for a company.
func (r *PgxPaymentRepository) GetPaymentSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.PaymentSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'CONFIRMED'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0),
			COALESCE(SUM(COALESCE(refund_amount, amount)) FILTER (WHERE status = 'REFUNDED'), 0),
			COUNT(*) FILTER (WHERE status = 'CONFIRMED'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'REFUNDED')
		FROM payments
		WHERE company_id = $1 AND payment_date >= $2 AND payment_date <= $3;
	`
	var summary domain.PaymentSummary
	err := r.Pool.QueryRow(ctx, query, companyID, from, to).Scan(
		&summary.TotalReceived,
		&summary.TotalPending,
		&summary.TotalRefunded,
		&summary.ConfirmedCount,
		&summary.PendingCount,
		&summary.RefundedCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate payment summary for company "+companyID, err)
	}
	return &summary, nil
}
