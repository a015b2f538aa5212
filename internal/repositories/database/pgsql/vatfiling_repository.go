package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	"github.com/qaydhq/qayd_backend/internal/models"
	"github.com/qaydhq/qayd_backend/internal/utils/mapping"
)

type PgxVatFilingRepository struct {
	BaseRepository
}

// newPgxVatFilingRepository creates a new repository for VAT filing data.
func newPgxVatFilingRepository(pool *pgxpool.Pool) portsrepo.VatFilingRepositoryFacade {
	return &PgxVatFilingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VatFilingRepositoryFacade = (*PgxVatFilingRepository)(nil)

const filingColumns = `
	filing_id, company_id, filing_period, period_start, period_end, status,
	taxable_sales, zero_rated_sales, exempt_sales, vat_collected, adjustment_vat, net_vat_payable,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFiling(row pgx.Row) (*models.VatFiling, error) {
	var m models.VatFiling
	err := row.Scan(
		&m.FilingID,
		&m.CompanyID,
		&m.FilingPeriod,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Status,
		&m.TaxableSales,
		&m.ZeroRatedSales,
		&m.ExemptSales,
		&m.VatCollected,
		&m.AdjustmentVat,
		&m.NetVatPayable,
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

// SaveFiling persists a filing snapshot with its items in one transaction.
// The unique constraint on (company_id, filing_period) surfaces as
// apperrors.ErrDuplicate.
func (r *PgxVatFilingRepository) SaveFiling(ctx context.Context, filing domain.VatFiling) (*domain.VatFiling, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelVatFiling(filing)
	insertQuery := `
		INSERT INTO vat_filings (` + filingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.FilingID, m.CompanyID, m.FilingPeriod, m.PeriodStart, m.PeriodEnd, m.Status,
		m.TaxableSales, m.ZeroRatedSales, m.ExemptSales, m.VatCollected, m.AdjustmentVat, m.NetVatPayable,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, apperrors.NewAppError(409, "a filing already exists for period "+m.FilingPeriod, apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert filing "+m.FilingID, err)
	}

	if len(filing.Items) > 0 {
		batch := &pgx.Batch{}
		itemQuery := `
			INSERT INTO vat_filing_items (filing_item_id, filing_id, invoice_id, invoice_number, issue_date, taxable_amount, zero_rated_amount, exempt_amount, vat_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		for _, item := range filing.Items {
			mi := mapping.ToModelVatFilingItem(item)
			batch.Queue(itemQuery,
				mi.FilingItemID, mi.FilingID, mi.InvoiceID, mi.InvoiceNumber, mi.IssueDate,
				mi.TaxableAmount, mi.ZeroRatedAmount, mi.ExemptAmount, mi.VatAmount,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert filing items for "+m.FilingID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &filing, nil
}

// UpdateFilingStatus transitions a filing's lifecycle status. The financial
// snapshot columns are never written here.
func (r *PgxVatFilingRepository) UpdateFilingStatus(ctx context.Context, filingID string, newStatus domain.FilingStatus, updatedBy string, updatedAt time.Time) (*domain.VatFiling, error) {
	query := `
		UPDATE vat_filings
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE filing_id = $1
		RETURNING ` + filingColumns + `;
	`
	m, err := scanFiling(r.Pool.QueryRow(ctx, query, filingID, string(newStatus), updatedAt, updatedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to update status for filing "+filingID, err)
	}
	f := mapping.ToDomainVatFiling(*m)
	return &f, nil
}

// FindFilingByID retrieves a filing with its line items.
func (r *PgxVatFilingRepository) FindFilingByID(ctx context.Context, filingID string) (*domain.VatFiling, error) {
	query := `SELECT ` + filingColumns + ` FROM vat_filings WHERE filing_id = $1;`
	m, err := scanFiling(r.Pool.QueryRow(ctx, query, filingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find filing "+filingID, err)
	}

	items, err := r.findItemsByFilingID(ctx, filingID)
	if err != nil {
		return nil, err
	}

	f := mapping.ToDomainVatFiling(*m)
	f.Items = items
	return &f, nil
}

// FindFilingByPeriod retrieves the filing for a company's period key.
func (r *PgxVatFilingRepository) FindFilingByPeriod(ctx context.Context, companyID string, filingPeriod string) (*domain.VatFiling, error) {
	query := `SELECT ` + filingColumns + ` FROM vat_filings WHERE company_id = $1 AND filing_period = $2;`
	m, err := scanFiling(r.Pool.QueryRow(ctx, query, companyID, filingPeriod))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find filing for period "+filingPeriod, err)
	}
	f := mapping.ToDomainVatFiling(*m)
	return &f, nil
}

func (r *PgxVatFilingRepository) findItemsByFilingID(ctx context.Context, filingID string) ([]domain.VatFilingItem, error) {
	query := `
		SELECT filing_item_id, filing_id, invoice_id, invoice_number, issue_date, taxable_amount, zero_rated_amount, exempt_amount, vat_amount
		FROM vat_filing_items
		WHERE filing_id = $1
		ORDER BY issue_date, invoice_number;
	`
	rows, err := r.Pool.Query(ctx, query, filingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for filing "+filingID, err)
	}
	defer rows.Close()

	var modelItems []models.VatFilingItem
	for rows.Next() {
		var mi models.VatFilingItem
		if err := rows.Scan(
			&mi.FilingItemID, &mi.FilingID, &mi.InvoiceID, &mi.InvoiceNumber, &mi.IssueDate,
			&mi.TaxableAmount, &mi.ZeroRatedAmount, &mi.ExemptAmount, &mi.VatAmount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for filing "+filingID, err)
		}
		modelItems = append(modelItems, mi)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading item rows for filing "+filingID, err)
	}
	return mapping.ToDomainVatFilingItemSlice(modelItems), nil
}

// ListFilingsByCompany retrieves a page of a company's filings, newest
// period first.
func (r *PgxVatFilingRepository) ListFilingsByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.VatFiling, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + filingColumns + `
		FROM vat_filings
		WHERE company_id = $1
		ORDER BY period_start DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list filings for company "+companyID, err)
	}
	defer rows.Close()

	filings := []domain.VatFiling{}
	for rows.Next() {
		m, err := scanFiling(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan filing row", err)
		}
		filings = append(filings, mapping.ToDomainVatFiling(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading filing rows", err)
	}
	return filings, nil
}

// SaveAdjustment persists a manual VAT adjustment.
func (r *PgxVatFilingRepository) SaveAdjustment(ctx context.Context, adjustment domain.VatAdjustment) (*domain.VatAdjustment, error) {
	m := mapping.ToModelVatAdjustment(adjustment)
	query := `
		INSERT INTO vat_adjustments (adjustment_id, company_id, type, amount, vat_impact, reason, adjustment_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AdjustmentID, m.CompanyID, m.Type, m.Amount, m.VatImpact, m.Reason, m.AdjustmentDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert adjustment "+m.AdjustmentID, err)
	}
	return &adjustment, nil
}

// ListAdjustmentsByPeriod retrieves adjustments dated within [from, to].
func (r *PgxVatFilingRepository) ListAdjustmentsByPeriod(ctx context.Context, companyID string, from, to time.Time) ([]domain.VatAdjustment, error) {
	query := `
		SELECT adjustment_id, company_id, type, amount, vat_impact, reason, adjustment_date, created_at, created_by, last_updated_at, last_updated_by
		FROM vat_adjustments
		WHERE company_id = $1 AND adjustment_date >= $2 AND adjustment_date <= $3
		ORDER BY adjustment_date;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list adjustments for company "+companyID, err)
	}
	defer rows.Close()

	adjustments := []domain.VatAdjustment{}
	for rows.Next() {
		var m models.VatAdjustment
		if err := rows.Scan(
			&m.AdjustmentID, &m.CompanyID, &m.Type, &m.Amount, &m.VatImpact, &m.Reason, &m.AdjustmentDate,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment row", err)
		}
		adjustments = append(adjustments, mapping.ToDomainVatAdjustment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading adjustment rows", err)
	}
	return adjustments, nil
}
