package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/core/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
)

type VatServiceTestSuite struct {
	suite.Suite
	mockFilingRepo  *MockVatFilingRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockSettingsSvc *MockVatSettingsService
	service         portssvc.VatSvcFacade
	companyID       string
	userID          string
	periodStart     time.Time
	periodEnd       time.Time
}

func (suite *VatServiceTestSuite) SetupTest() {
	suite.mockFilingRepo = new(MockVatFilingRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockSettingsSvc = new(MockVatSettingsService)
	suite.service = services.NewVatService(suite.mockFilingRepo, suite.mockInvoiceRepo, suite.mockSettingsSvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.periodStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.periodEnd = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

// periodInvoices returns one invoice per lifecycle state the aggregation
// cares about: two included, one draft, one cancelled.
func (suite *VatServiceTestSuite) periodInvoices() []domain.Invoice {
	return []domain.Invoice{
		{
			InvoiceID:       uuid.NewString(),
			CompanyID:       suite.companyID,
			InvoiceNumber:   "INV-2026-0001",
			IssueDate:       suite.periodStart.AddDate(0, 0, 10),
			Status:          domain.InvoiceSent,
			TaxableSubtotal: decimal.NewFromInt(1000),
			VatAmount:       decimal.NewFromInt(50),
		},
		{
			InvoiceID:         uuid.NewString(),
			CompanyID:         suite.companyID,
			InvoiceNumber:     "INV-2026-0002",
			IssueDate:         suite.periodStart.AddDate(0, 1, 0),
			Status:            domain.InvoicePaid,
			ZeroRatedSubtotal: decimal.NewFromInt(400),
			ExemptSubtotal:    decimal.NewFromInt(100),
		},
		{
			InvoiceID:       uuid.NewString(),
			CompanyID:       suite.companyID,
			InvoiceNumber:   "INV-2026-0003",
			IssueDate:       suite.periodStart.AddDate(0, 1, 5),
			Status:          domain.InvoiceDraft,
			TaxableSubtotal: decimal.NewFromInt(9999),
			VatAmount:       decimal.NewFromFloat(499.95),
		},
		{
			InvoiceID:       uuid.NewString(),
			CompanyID:       suite.companyID,
			InvoiceNumber:   "INV-2026-0004",
			IssueDate:       suite.periodStart.AddDate(0, 2, 0),
			Status:          domain.InvoiceCancelled,
			TaxableSubtotal: decimal.NewFromInt(500),
			VatAmount:       decimal.NewFromInt(25),
		},
	}
}

func (suite *VatServiceTestSuite) TestGetVatSummary_SkipsDraftAndCancelled() {
	ctx := context.Background()
	adjustments := []domain.VatAdjustment{
		{AdjustmentID: uuid.NewString(), Type: domain.AdjustmentCredit, VatImpact: decimal.NewFromInt(-10)},
		{AdjustmentID: uuid.NewString(), Type: domain.AdjustmentDebit, VatImpact: decimal.NewFromInt(4)},
	}

	suite.mockInvoiceRepo.On("ListInvoicesByIssueDateRange", ctx, suite.companyID, suite.periodStart, suite.periodEnd).Return(suite.periodInvoices(), nil).Once()
	suite.mockFilingRepo.On("ListAdjustmentsByPeriod", ctx, suite.companyID, suite.periodStart, suite.periodEnd).Return(adjustments, nil).Once()

	summary, err := suite.service.GetVatSummary(ctx, suite.companyID, suite.periodStart, suite.periodEnd)

	suite.Require().NoError(err)
	suite.Equal(2, summary.InvoiceCount)
	suite.True(summary.TaxableSales.Equal(decimal.NewFromInt(1000)), "taxable got %s", summary.TaxableSales)
	suite.True(summary.ZeroRatedSales.Equal(decimal.NewFromInt(400)))
	suite.True(summary.ExemptSales.Equal(decimal.NewFromInt(100)))
	suite.True(summary.VatCollected.Equal(decimal.NewFromInt(50)))
	suite.True(summary.AdjustmentVat.Equal(decimal.NewFromInt(-6)))
	// 50 + (-6)
	suite.True(summary.NetVatPayable.Equal(decimal.NewFromInt(44)), "net got %s", summary.NetVatPayable)
	// Net payable is reported rounded to fils precision.
	suite.Equal(int32(-2), summary.NetVatPayable.Exponent())
}

func (suite *VatServiceTestSuite) TestGetVatSummary_InvalidPeriod() {
	ctx := context.Background()

	summary, err := suite.service.GetVatSummary(ctx, suite.companyID, suite.periodEnd, suite.periodStart)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(summary)
}

func (suite *VatServiceTestSuite) TestCreateVatFiling_SnapshotsPeriod() {
	ctx := context.Background()
	invoices := suite.periodInvoices()

	suite.mockInvoiceRepo.On("ListInvoicesByIssueDateRange", ctx, suite.companyID, suite.periodStart, suite.periodEnd).Return(invoices, nil).Twice()
	suite.mockFilingRepo.On("ListAdjustmentsByPeriod", ctx, suite.companyID, suite.periodStart, suite.periodEnd).Return([]domain.VatAdjustment{}, nil).Once()

	var persisted domain.VatFiling
	suite.mockFilingRepo.On("SaveFiling", ctx, mock.AnythingOfType("domain.VatFiling")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(domain.VatFiling) }).
		Return(&domain.VatFiling{FilingID: "saved"}, nil).Once()

	req := dto.CreateVatFilingRequest{PeriodStart: suite.periodStart, PeriodEnd: suite.periodEnd}
	filing, err := suite.service.CreateVatFiling(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(filing)

	suite.Equal(domain.FilingDraft, persisted.Status)
	suite.Equal("2026-01-01_2026-03-31", persisted.FilingPeriod)
	suite.True(persisted.VatCollected.Equal(decimal.NewFromInt(50)))
	suite.True(persisted.NetVatPayable.Equal(decimal.NewFromInt(50)))
	// Draft and cancelled invoices never enter the snapshot.
	suite.Require().Len(persisted.Items, 2)
	suite.Equal("INV-2026-0001", persisted.Items[0].InvoiceNumber)
	suite.Equal("INV-2026-0002", persisted.Items[1].InvoiceNumber)
	suite.Equal(persisted.FilingID, persisted.Items[0].FilingID)
}

func (suite *VatServiceTestSuite) TestCreateVatFiling_DuplicatePeriod() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("ListInvoicesByIssueDateRange", ctx, suite.companyID, suite.periodStart, suite.periodEnd).Return([]domain.Invoice{}, nil).Twice()
	suite.mockFilingRepo.On("ListAdjustmentsByPeriod", ctx, suite.companyID, suite.periodStart, suite.periodEnd).Return([]domain.VatAdjustment{}, nil).Once()
	suite.mockFilingRepo.On("SaveFiling", ctx, mock.AnythingOfType("domain.VatFiling")).Return(nil, apperrors.ErrDuplicate).Once()

	req := dto.CreateVatFilingRequest{PeriodStart: suite.periodStart, PeriodEnd: suite.periodEnd}
	filing, err := suite.service.CreateVatFiling(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(filing)
}

func (suite *VatServiceTestSuite) TestUpdateFilingStatus_DraftToSubmitted() {
	ctx := context.Background()
	filingID := uuid.NewString()
	existing := &domain.VatFiling{FilingID: filingID, CompanyID: suite.companyID, Status: domain.FilingDraft}
	submitted := *existing
	submitted.Status = domain.FilingSubmitted

	suite.mockFilingRepo.On("FindFilingByID", ctx, filingID).Return(existing, nil).Once()
	suite.mockFilingRepo.On("UpdateFilingStatus", ctx, filingID, domain.FilingSubmitted, suite.userID, mock.AnythingOfType("time.Time")).Return(&submitted, nil).Once()

	got, err := suite.service.UpdateFilingStatus(ctx, suite.companyID, filingID, domain.FilingSubmitted, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FilingSubmitted, got.Status)
}

func (suite *VatServiceTestSuite) TestUpdateFilingStatus_AcceptedIsTerminal() {
	ctx := context.Background()
	filingID := uuid.NewString()
	existing := &domain.VatFiling{FilingID: filingID, CompanyID: suite.companyID, Status: domain.FilingAccepted}

	suite.mockFilingRepo.On("FindFilingByID", ctx, filingID).Return(existing, nil).Once()

	got, err := suite.service.UpdateFilingStatus(ctx, suite.companyID, filingID, domain.FilingSubmitted, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(got)
	suite.mockFilingRepo.AssertNotCalled(suite.T(), "UpdateFilingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestCreateAdjustment_CreditReducesNetVat() {
	ctx := context.Background()

	var persisted domain.VatAdjustment
	suite.mockFilingRepo.On("SaveAdjustment", ctx, mock.AnythingOfType("domain.VatAdjustment")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(domain.VatAdjustment) }).
		Return(&domain.VatAdjustment{AdjustmentID: "saved"}, nil).Once()

	req := dto.CreateVatAdjustmentRequest{
		Type:           "CREDIT",
		Amount:         decimal.NewFromFloat(12.345),
		Reason:         "Bad debt relief",
		AdjustmentDate: time.Date(2026, 2, 15, 14, 30, 0, 0, time.UTC),
	}
	adj, err := suite.service.CreateAdjustment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(adj)
	// Rounded half-to-even to 12.34, negated for a credit.
	suite.True(persisted.VatImpact.Equal(decimal.NewFromFloat(-12.34)), "impact got %s", persisted.VatImpact)
	suite.Equal(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), persisted.AdjustmentDate)
}

func (suite *VatServiceTestSuite) TestCreateAdjustment_DebitIncreasesNetVat() {
	ctx := context.Background()

	var persisted domain.VatAdjustment
	suite.mockFilingRepo.On("SaveAdjustment", ctx, mock.AnythingOfType("domain.VatAdjustment")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(domain.VatAdjustment) }).
		Return(&domain.VatAdjustment{AdjustmentID: "saved"}, nil).Once()

	req := dto.CreateVatAdjustmentRequest{
		Type:           "DEBIT",
		Amount:         decimal.NewFromInt(40),
		Reason:         "Under-reported output VAT",
		AdjustmentDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	_, err := suite.service.CreateAdjustment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(persisted.VatImpact.Equal(decimal.NewFromInt(40)))
}

func (suite *VatServiceTestSuite) TestCreateAdjustment_RequiresReason() {
	ctx := context.Background()

	adj, err := suite.service.CreateAdjustment(ctx, suite.companyID, dto.CreateVatAdjustmentRequest{
		Type:           "DEBIT",
		Amount:         decimal.NewFromInt(40),
		AdjustmentDate: time.Now().UTC(),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(adj)
}

func (suite *VatServiceTestSuite) TestGenerateFtaAuditFile() {
	ctx := context.Background()
	filingID := uuid.NewString()
	filing := &domain.VatFiling{
		FilingID:       filingID,
		CompanyID:      suite.companyID,
		FilingPeriod:   "2026-01-01_2026-03-31",
		Status:         domain.FilingSubmitted,
		TaxableSales:   decimal.NewFromInt(1000),
		ZeroRatedSales: decimal.NewFromInt(400),
		ExemptSales:    decimal.NewFromInt(100),
		VatCollected:   decimal.NewFromInt(50),
		AdjustmentVat:  decimal.NewFromInt(-6),
		NetVatPayable:  decimal.NewFromInt(44),
		Items: []domain.VatFilingItem{
			{
				InvoiceNumber: "INV-2026-0001",
				IssueDate:     time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
				TaxableAmount: decimal.NewFromInt(1000),
				VatAmount:     decimal.NewFromInt(50),
			},
		},
	}
	settings := &domain.VatSettings{CompanyID: suite.companyID, TRN: "100000000000003", VatEnabled: true}

	suite.mockFilingRepo.On("FindFilingByID", ctx, filingID).Return(filing, nil).Once()
	suite.mockSettingsSvc.On("GetVatSettings", ctx, suite.companyID).Return(settings, nil).Once()

	contents, filename, err := suite.service.GenerateFtaAuditFile(ctx, suite.companyID, filingID)

	suite.Require().NoError(err)
	suite.Equal("vat_filing_2026-01-01_2026-03-31.csv", filename)

	csvText := string(contents)
	suite.Contains(csvText, "TRN,100000000000003")
	suite.Contains(csvText, "Net VAT Payable,44.00")
	suite.Contains(csvText, "INV-2026-0001,2026-01-11,1000.00,0.00,0.00,50.00")
	suite.Equal(1, strings.Count(csvText, "INV-2026-0001"))
}

func (suite *VatServiceTestSuite) TestGetFilingByID_OtherCompanyReadsAsNotFound() {
	ctx := context.Background()
	filingID := uuid.NewString()
	filing := &domain.VatFiling{FilingID: filingID, CompanyID: uuid.NewString()}
	suite.mockFilingRepo.On("FindFilingByID", ctx, filingID).Return(filing, nil).Once()

	got, err := suite.service.GetFilingByID(ctx, suite.companyID, filingID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestVatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VatServiceTestSuite))
}
