package dto

import (
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	LineType  string          `json:"lineType"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalID   string                `json:"journalID"`
	CompanyID   string                `json:"companyID"`
	JournalDate time.Time             `json:"journalDate"`
	Description string                `json:"description"`
	SourceType  string                `json:"sourceType"`
	SourceID    string                `json:"sourceID,omitempty"`
	Amount      decimal.Decimal       `json:"amount"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListJournalEntriesResponse wraps the list of journal entries.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	CompanyID   string          `json:"companyID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		Amount:    l.Amount,
		LineType:  string(l.LineType),
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToJournalLineResponse(&e.Lines[i])
	}
	return JournalEntryResponse{
		JournalID:   e.JournalID,
		CompanyID:   e.CompanyID,
		JournalDate: e.JournalDate,
		Description: e.Description,
		SourceType:  string(e.SourceType),
		SourceID:    e.SourceID,
		Amount:      e.Amount,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
	}
}

// ToListJournalEntriesResponse converts domain entries to the list DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry) *ListJournalEntriesResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return &ListJournalEntriesResponse{Entries: responses}
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		CompanyID:   a.CompanyID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Balance:     a.Balance,
	}
}
