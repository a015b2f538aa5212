package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Well-known account codes used by payment journal posting.
const (
	AccountCodeCash               = "1000"
	AccountCodeBank               = "1010"
	AccountCodeAccountsReceivable = "1200"
)

// Account represents a ledger account in a company's chart of accounts.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	CompanyID   string          `json:"companyID"` // Tenant scope
	Code        string          `json:"code"`      // Stable well-known code, unique per company
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"` // Persisted balance, maintained under row locks
	IsActive    bool            `json:"isActive"`
	AuditFields
}
