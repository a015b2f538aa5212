package services_test

import (
	"context"
	"time"

	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portsrepo "github.com/qaydhq/qayd_backend/internal/core/ports/repositories"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByIssueDateRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceFinancials(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, companyID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllocationsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

func (m *MockPaymentRepository) CountAllocationsByInvoiceID(ctx context.Context, invoiceID string) (int, error) {
	args := m.Called(ctx, invoiceID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) GetPaymentSummary(ctx context.Context, companyID string, from, to time.Time) (*domain.PaymentSummary, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSummary), args.Error(1)
}

func (m *MockPaymentRepository) CreatePaymentWithAllocation(ctx context.Context, payment domain.Payment, allocation domain.PaymentAllocation) (*domain.Payment, error) {
	args := m.Called(ctx, payment, allocation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus domain.PaymentStatus, refundAmount *decimal.Decimal, updatedBy string, updatedAt time.Time) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, newStatus, refundAmount, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) RecalculateInvoiceAmounts(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock VatFilingRepository ---

type MockVatFilingRepository struct {
	mock.Mock
}

var _ portsrepo.VatFilingRepositoryFacade = (*MockVatFilingRepository)(nil)

func (m *MockVatFilingRepository) FindFilingByID(ctx context.Context, filingID string) (*domain.VatFiling, error) {
	args := m.Called(ctx, filingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatFiling), args.Error(1)
}

func (m *MockVatFilingRepository) FindFilingByPeriod(ctx context.Context, companyID string, filingPeriod string) (*domain.VatFiling, error) {
	args := m.Called(ctx, companyID, filingPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatFiling), args.Error(1)
}

func (m *MockVatFilingRepository) ListFilingsByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.VatFiling, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatFiling), args.Error(1)
}

func (m *MockVatFilingRepository) ListAdjustmentsByPeriod(ctx context.Context, companyID string, from, to time.Time) ([]domain.VatAdjustment, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatAdjustment), args.Error(1)
}

func (m *MockVatFilingRepository) SaveFiling(ctx context.Context, filing domain.VatFiling) (*domain.VatFiling, error) {
	args := m.Called(ctx, filing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatFiling), args.Error(1)
}

func (m *MockVatFilingRepository) UpdateFilingStatus(ctx context.Context, filingID string, newStatus domain.FilingStatus, updatedBy string, updatedAt time.Time) (*domain.VatFiling, error) {
	args := m.Called(ctx, filingID, newStatus, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatFiling), args.Error(1)
}

func (m *MockVatFilingRepository) SaveAdjustment(ctx context.Context, adjustment domain.VatAdjustment) (*domain.VatAdjustment, error) {
	args := m.Called(ctx, adjustment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatAdjustment), args.Error(1)
}

// --- Mock VatSettingsRepository ---

type MockVatSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.VatSettingsRepositoryFacade = (*MockVatSettingsRepository)(nil)

func (m *MockVatSettingsRepository) GetVatSettings(ctx context.Context, companyID string) (*domain.VatSettings, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatSettings), args.Error(1)
}

func (m *MockVatSettingsRepository) UpsertVatSettings(ctx context.Context, settings domain.VatSettings) (*domain.VatSettings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatSettings), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntriesByCompany(ctx context.Context, companyID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockJournalRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) EnsureAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock VatSettingsService (as consumed by invoice and VAT services) ---

type MockVatSettingsService struct {
	mock.Mock
}

var _ portssvc.VatSettingsSvcFacade = (*MockVatSettingsService)(nil)

func (m *MockVatSettingsService) GetVatSettings(ctx context.Context, companyID string) (*domain.VatSettings, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatSettings), args.Error(1)
}

func (m *MockVatSettingsService) UpdateVatSettings(ctx context.Context, companyID string, req dto.UpdateVatSettingsRequest, requestingUserID string) (*domain.VatSettings, error) {
	args := m.Called(ctx, companyID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatSettings), args.Error(1)
}

// --- Mock AccountingWriter (as consumed by the payment service) ---

type MockAccountingWriter struct {
	mock.Mock
}

var _ portssvc.AccountingWriterSvc = (*MockAccountingWriter)(nil)

func (m *MockAccountingWriter) PostPaymentJournal(ctx context.Context, payment domain.Payment, invoice domain.Invoice, sourceType domain.JournalSourceType, requestingUserID string) error {
	args := m.Called(ctx, payment, invoice, sourceType, requestingUserID)
	return args.Error(0)
}
