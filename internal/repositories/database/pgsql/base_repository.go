package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qaydhq/qayd_backend/internal/apperrors"
)

// BaseRepository provides common transaction functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// nextSequenceNumber atomically increments and returns the per-company,
// per-year counter stored in the given sequence table. Must run inside the
// transaction that persists the numbered document so gaps only appear on
// rollback.
func nextSequenceNumber(ctx context.Context, tx pgx.Tx, table string, prefix string, companyID string, year int) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (company_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_value = %s.last_value + 1
		RETURNING last_value;
	`, table, table)

	var seq int64
	if err := tx.QueryRow(ctx, query, companyID, year).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to advance sequence "+table, err)
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq), nil
}
