package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
	"github.com/qaydhq/qayd_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountingService posts balanced journal entries for payment events and
// serves ledger reads.
type accountingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewAccountingService creates a new AccountingService.
func NewAccountingService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.AccountingSvcFacade {
	return &accountingService{journalRepo: journalRepo}
}

var _ portssvc.AccountingSvcFacade = (*accountingService)(nil)

// cashAccountCode maps a payment method to the asset account it settles into.
func cashAccountCode(method domain.PaymentMethod) string {
	if method == domain.MethodCash {
		return domain.AccountCodeCash
	}
	return domain.AccountCodeBank
}

// PostPaymentJournal posts the double-entry record for a confirmed or
// refunded payment. Confirmation debits cash or bank and credits accounts
// receivable; a refund reverses the sides for the refunded amount.
func (s *accountingService) PostPaymentJournal(ctx context.Context, payment domain.Payment, invoice domain.Invoice, sourceType domain.JournalSourceType, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := payment.Amount
	if sourceType == domain.SourcePaymentRefund && payment.RefundAmount != nil {
		amount = *payment.RefundAmount
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("journal amount must be positive for payment %s", payment.PaymentID)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	cashAccount, err := s.journalRepo.EnsureAccount(ctx, domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   payment.CompanyID,
		Code:        cashAccountCode(payment.Method),
		Name:        accountNameForCode(cashAccountCode(payment.Method)),
		AccountType: domain.Asset,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: audit,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure cash account: %w", err)
	}
	receivableAccount, err := s.journalRepo.EnsureAccount(ctx, domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   payment.CompanyID,
		Code:        domain.AccountCodeAccountsReceivable,
		Name:        accountNameForCode(domain.AccountCodeAccountsReceivable),
		AccountType: domain.Asset,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: audit,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure receivable account: %w", err)
	}

	journalID := uuid.NewString()
	debitAccount, creditAccount := cashAccount, receivableAccount
	description := fmt.Sprintf("Payment %s received against invoice %s", payment.PaymentNumber, invoice.InvoiceNumber)
	if sourceType == domain.SourcePaymentRefund {
		debitAccount, creditAccount = receivableAccount, cashAccount
		description = fmt.Sprintf("Payment %s refunded against invoice %s", payment.PaymentNumber, invoice.InvoiceNumber)
	}

	lines := []domain.JournalLine{
		{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   debitAccount.AccountID,
			Amount:      amount,
			LineType:    domain.Debit,
			AuditFields: audit,
		},
		{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   creditAccount.AccountID,
			Amount:      amount,
			LineType:    domain.Credit,
			AuditFields: audit,
		},
	}
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return err
	}

	balanceChanges := make(map[string]decimal.Decimal, 2)
	accountTypes := map[string]domain.AccountType{
		debitAccount.AccountID:  debitAccount.AccountType,
		creditAccount.AccountID: creditAccount.AccountType,
	}
	for _, line := range lines {
		signed, err := accounting.CalculateSignedAmount(line, accountTypes[line.AccountID])
		if err != nil {
			return err
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	entry := domain.JournalEntry{
		JournalID:   journalID,
		CompanyID:   payment.CompanyID,
		JournalDate: now,
		Description: description,
		SourceType:  sourceType,
		SourceID:    payment.PaymentID,
		Amount:      amount,
		AuditFields: audit,
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry, lines, balanceChanges); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("payment_id", payment.PaymentID))
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("journal_id", journalID), slog.String("source_type", string(sourceType)), slog.String("payment_id", payment.PaymentID))
	return nil
}

func accountNameForCode(code string) string {
	switch code {
	case domain.AccountCodeCash:
		return "Cash"
	case domain.AccountCodeBank:
		return "Bank"
	case domain.AccountCodeAccountsReceivable:
		return "Accounts Receivable"
	}
	return code
}

// GetJournalEntryByID retrieves a journal entry scoped to the company.
func (s *accountingService) GetJournalEntryByID(ctx context.Context, companyID string, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", journalID))
	}
	return entry, nil
}

// ListJournalEntries retrieves a page of a company's journal entries.
func (s *accountingService) ListJournalEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	entries, err := s.journalRepo.ListJournalEntriesByCompany(ctx, companyID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return dto.ToListJournalEntriesResponse(entries), nil
}

// ListAccounts retrieves a company's ledger accounts.
func (s *accountingService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	return s.journalRepo.ListAccountsByCompany(ctx, companyID)
}
