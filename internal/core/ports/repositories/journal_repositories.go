package repositories

import (
	"context"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries and accounts.
type JournalReader interface {
	// FindJournalEntryByID retrieves a journal entry with its lines.
	FindJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournalEntriesByCompany retrieves a company's journal entries,
	// newest first.
	ListJournalEntriesByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error)

	// FindLinesByJournalID retrieves the lines of one journal entry.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindAccountByCode retrieves a company account by its ledger code.
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// ListAccountsByCompany retrieves all accounts of a company.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)
}

// JournalWriter defines write operations for journal entries and accounts.
type JournalWriter interface {
	// SaveJournalEntry persists an entry with its lines and applies the
	// signed balance changes to the affected accounts, locking the account
	// rows, all within one transaction. balanceChanges keys are account IDs.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error

	// EnsureAccount creates the account when it does not exist and returns
	// it either way.
	EnsureAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
