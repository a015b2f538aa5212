package pgsql

import (
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		VatFilingRepo:   newPgxVatFilingRepository(dbPool),
		VatSettingsRepo: newPgxVatSettingsRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
	}
}
