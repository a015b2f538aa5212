package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLineType indicates whether a journal line is a Debit or a Credit.
type JournalLineType string

const (
	Debit  JournalLineType = "DEBIT"
	Credit JournalLineType = "CREDIT"
)

// JournalSourceType identifies the business event a journal entry was posted for.
type JournalSourceType string

const (
	SourcePaymentConfirmation JournalSourceType = "PAYMENT_CONFIRMATION"
	SourcePaymentRefund       JournalSourceType = "PAYMENT_REFUND"
	SourceManual              JournalSourceType = "MANUAL"
)

// JournalEntry represents a single, balanced accounting event composed of
// multiple lines. Posted from payment confirmation on a best-effort basis.
type JournalEntry struct {
	JournalID   string            `json:"journalID"` // Primary Key (UUID)
	CompanyID   string            `json:"companyID"` // Tenant scope
	JournalDate time.Time         `json:"journalDate"`
	Description string            `json:"description"`
	SourceType  JournalSourceType `json:"sourceType"`
	SourceID    string            `json:"sourceID"` // e.g. the payment ID
	Amount      decimal.Decimal   `json:"amount"`   // Economic value: sum of the debit side
	Lines       []JournalLine     `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID    string          `json:"lineID"`    // Primary Key (UUID)
	JournalID string          `json:"journalID"` // FK -> JournalEntry.journalID
	AccountID string          `json:"accountID"` // FK -> Account.accountID
	Amount    decimal.Decimal `json:"amount"`    // Positive value
	LineType  JournalLineType `json:"lineType"`
	AuditFields
}
