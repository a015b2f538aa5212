package services

import (
	"context"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/dto"
)

// AccountingReaderSvc defines read operations for the double-entry ledger
type AccountingReaderSvc interface {
	// GetJournalEntryByID retrieves a journal entry with its lines.
	GetJournalEntryByID(ctx context.Context, companyID string, journalID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of journal entries.
	ListJournalEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListAccounts retrieves a company's ledger accounts with balances.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountingWriterSvc defines posting operations for the double-entry ledger
type AccountingWriterSvc interface {
	// PostPaymentJournal posts the balanced journal entry for a confirmed
	// or refunded payment: cash or bank against accounts receivable.
	PostPaymentJournal(ctx context.Context, payment domain.Payment, invoice domain.Invoice, sourceType domain.JournalSourceType, requestingUserID string) error
}

// AccountingSvcFacade combines all accounting service interfaces
type AccountingSvcFacade interface {
	AccountingReaderSvc
	AccountingWriterSvc
}
