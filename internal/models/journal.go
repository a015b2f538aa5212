package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the row representation of the accounts table.
type Account struct {
	AccountID   string
	CompanyID   string
	Code        string
	Name        string
	AccountType string
	Balance     decimal.Decimal
	IsActive    bool
	AuditFields
}

// JournalEntry is the row representation of the journal_entries table.
type JournalEntry struct {
	JournalID   string
	CompanyID   string
	JournalDate time.Time
	Description string
	SourceType  string
	SourceID    string
	Amount      decimal.Decimal
	AuditFields
}

// JournalLine is the row representation of the journal_lines table.
type JournalLine struct {
	LineID    string
	JournalID string
	AccountID string
	Amount    decimal.Decimal
	LineType  string
	AuditFields
}
