package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	"github.com/qaydhq/qayd_backend/internal/models"
	"github.com/qaydhq/qayd_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the double-entry ledger.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, company_id, journal_date, description, source_type, source_id, amount,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.JournalDate,
		&m.Description,
		&m.SourceType,
		&m.SourceID,
		&m.Amount,
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

// SaveJournalEntry persists an entry with its lines and applies the signed
// balance changes to the affected accounts inside one transaction. Account
// rows are locked in a stable order before their balances move.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.JournalID, m.CompanyID, m.JournalDate, m.Description, m.SourceType, m.SourceID, m.Amount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalID, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	lockQuery := `
		SELECT account_id FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for journal "+m.JournalID, err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed locking accounts for journal "+m.JournalID, err)
	}
	if locked != len(accountIDs) {
		return apperrors.NewAppError(404, "one or more accounts missing for journal "+m.JournalID, apperrors.ErrNotFound)
	}

	for accID, change := range balanceChanges {
		tag, err := tx.Exec(ctx, `
			UPDATE accounts
			SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;
		`, accID, change, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update balance for account "+accID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(404, "account "+accID+" missing during balance update", apperrors.ErrNotFound)
		}
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, amount, line_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID, ml.JournalID, ml.AccountID, ml.Amount, ml.LineType,
			ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines for "+m.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// EnsureAccount creates the account when it does not exist and returns the
// persisted row either way.
func (r *PgxJournalRepository) EnsureAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	insertQuery := `
		INSERT INTO accounts (account_id, company_id, code, name, account_type, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, code) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, insertQuery,
		account.AccountID, account.CompanyID, account.Code, account.Name, string(account.AccountType),
		account.Balance, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure account "+account.Code, err)
	}
	return r.FindAccountByCode(ctx, account.CompanyID, account.Code)
}

// FindAccountByCode retrieves a company account by its ledger code.
func (r *PgxJournalRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	query := `
		SELECT account_id, company_id, code, name, account_type, balance, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE company_id = $1 AND code = $2;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, companyID, code).Scan(
		&m.AccountID, &m.CompanyID, &m.Code, &m.Name, &m.AccountType, &m.Balance, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccountsByCompany retrieves all accounts of a company ordered by code.
func (r *PgxJournalRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, company_id, code, name, account_type, balance, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE company_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID, &m.CompanyID, &m.Code, &m.Name, &m.AccountType, &m.Balance, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading account rows", err)
	}
	return accounts, nil
}

// FindJournalEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_id = $1;`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+journalID, err)
	}

	lines, err := r.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(*m)
	entry.Lines = lines
	return &entry, nil
}

// ListJournalEntriesByCompany retrieves a page of journal entries, newest first.
func (r *PgxJournalRepository) ListJournalEntriesByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE company_id = $1
		ORDER BY journal_date DESC, journal_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading journal entry rows", err)
	}
	return entries, nil
}

// FindLinesByJournalID retrieves the lines of one journal entry.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, amount, line_type, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	var modelLines []models.JournalLine
	for rows.Next() {
		var ml models.JournalLine
		if err := rows.Scan(
			&ml.LineID, &ml.JournalID, &ml.AccountID, &ml.Amount, &ml.LineType,
			&ml.CreatedAt, &ml.CreatedBy, &ml.LastUpdatedAt, &ml.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, err)
		}
		modelLines = append(modelLines, ml)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading line rows for journal "+journalID, err)
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}
