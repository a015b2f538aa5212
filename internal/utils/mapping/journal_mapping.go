package mapping

import (
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its row representation.
func ToModelJournalEntry(j domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalID:   j.JournalID,
		CompanyID:   j.CompanyID,
		JournalDate: j.JournalDate,
		Description: j.Description,
		SourceType:  string(j.SourceType),
		SourceID:    j.SourceID,
		Amount:      j.Amount,
		AuditFields: toModelAuditFields(j.AuditFields),
	}
}

// ToDomainJournalEntry converts a journal entry row to its domain representation.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:   m.JournalID,
		CompanyID:   m.CompanyID,
		JournalDate: m.JournalDate,
		Description: m.Description,
		SourceType:  domain.JournalSourceType(m.SourceType),
		SourceID:    m.SourceID,
		Amount:      m.Amount,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain journal line to its row representation.
func ToModelJournalLine(l domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      l.LineID,
		JournalID:   l.JournalID,
		AccountID:   l.AccountID,
		Amount:      l.Amount,
		LineType:    string(l.LineType),
		AuditFields: toModelAuditFields(l.AuditFields),
	}
}

// ToDomainJournalLine converts a journal line row to its domain representation.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		LineType:    domain.JournalLineType(m.LineType),
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts journal line rows to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		lines[i] = ToDomainJournalLine(m)
	}
	return lines
}

// ToDomainAccount converts an account row to its domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}
