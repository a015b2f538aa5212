package services_test

import (
	"context"
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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPaymentRepo *MockPaymentRepository
	mockSettingsSvc *MockVatSettingsService
	service         portssvc.InvoiceSvcFacade
	companyID       string
	userID          string
	settings        domain.VatSettings
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockSettingsSvc = new(MockVatSettingsService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockPaymentRepo, suite.mockSettingsSvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.settings = domain.VatSettings{
		CompanyID:       suite.companyID,
		TRN:             "100000000000003",
		VatEnabled:      true,
		FilingFrequency: domain.FilingQuarterly,
		FilingDay:       28,
	}
}

func strPtr(s string) *string { return &s }

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_MixedVatTypes() {
	ctx := context.Background()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerName: "Al Noor Trading LLC",
		IssueDate:    issue,
		DueDate:      issue.AddDate(0, 1, 0),
		Discount:     decimal.NewFromInt(20),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			{Description: "Export goods", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50), VatType: strPtr("ZERO_RATED")},
			{Description: "Local passenger transport", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(30), VatType: strPtr("EXEMPT")},
		},
	}

	suite.mockSettingsSvc.On("GetVatSettings", ctx, suite.companyID).Return(&suite.settings, nil).Once()

	var persisted domain.Invoice
	var persistedItems []domain.InvoiceItem
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(domain.Invoice)
			persistedItems = args.Get(2).([]domain.InvoiceItem)
		}).
		Return(&domain.Invoice{InvoiceID: "saved", InvoiceNumber: "INV-2026-0001"}, nil).Once()

	created, err := suite.service.CreateInvoice(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("INV-2026-0001", created.InvoiceNumber)

	suite.Equal(domain.InvoiceDraft, persisted.Status)
	suite.Equal(domain.VatStandard, persisted.VatType)
	suite.Equal(suite.settings.TRN, persisted.SupplierTRN)
	suite.True(persisted.TaxableSubtotal.Equal(decimal.NewFromInt(200)), "taxable got %s", persisted.TaxableSubtotal)
	suite.True(persisted.ZeroRatedSubtotal.Equal(decimal.NewFromInt(50)))
	suite.True(persisted.ExemptSubtotal.Equal(decimal.NewFromInt(30)))
	// VAT is 5% of the discounted taxable base: (200 - 20) * 0.05 = 9.00
	suite.True(persisted.VatAmount.Equal(decimal.NewFromInt(9)), "vat got %s", persisted.VatAmount)
	// 280 - 20 + 9
	suite.True(persisted.TotalWithVAT.Equal(decimal.NewFromInt(269)), "total got %s", persisted.TotalWithVAT)
	suite.True(persisted.PaidAmount.IsZero())
	suite.True(persisted.OutstandingAmount.Equal(persisted.TotalWithVAT))
	suite.Equal(suite.userID, persisted.CreatedBy)

	suite.Require().Len(persistedItems, 3)
	suite.True(persistedItems[0].VatAmount.Equal(decimal.NewFromInt(10))) // 200 * 0.05, line-level figure
	suite.True(persistedItems[1].VatAmount.IsZero())
	suite.True(persistedItems[2].VatAmount.IsZero())

	suite.mockSettingsSvc.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_MissingTRNBlocksTaxableInvoice() {
	ctx := context.Background()
	noTRN := suite.settings
	noTRN.TRN = ""
	suite.mockSettingsSvc.On("GetVatSettings", ctx, suite.companyID).Return(&noTRN, nil).Once()

	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerName: "Al Noor Trading LLC",
		IssueDate:    issue,
		DueDate:      issue.AddDate(0, 1, 0),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	created, err := suite.service.CreateInvoice(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DueDateBeforeIssueDate() {
	ctx := context.Background()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerName: "Al Noor Trading LLC",
		IssueDate:    issue,
		DueDate:      issue.AddDate(0, 0, -1),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	created, err := suite.service.CreateInvoice(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_PaidIsFrozen() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoicePaid,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.companyID, invoiceID, dto.UpdateInvoiceRequest{CustomerName: strPtr("New Name")}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceFinancials", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_AllocatedAmountsAreFrozen() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoiceSent,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("CountAllocationsByInvoiceID", ctx, invoiceID).Return(1, nil).Once()

	req := dto.UpdateInvoiceRequest{
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	updated, err := suite.service.UpdateInvoice(ctx, suite.companyID, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceFinancials", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_UnpaidSentInvoiceRecomputes() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoiceSent,
		VatType:   domain.VatStandard,
		IssueDate: issue,
		DueDate:   issue.AddDate(0, 1, 0),
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("CountAllocationsByInvoiceID", ctx, invoiceID).Return(0, nil).Once()
	suite.mockSettingsSvc.On("GetVatSettings", ctx, suite.companyID).Return(&suite.settings, nil).Once()

	var persisted domain.Invoice
	suite.mockInvoiceRepo.On("UpdateInvoiceFinancials", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	req := dto.UpdateInvoiceRequest{
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	updated, err := suite.service.UpdateInvoice(ctx, suite.companyID, invoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.TotalWithVAT.Equal(decimal.NewFromInt(315)), "total got %s", updated.TotalWithVAT)
	suite.True(persisted.VatAmount.Equal(decimal.NewFromInt(15)), "vat got %s", persisted.VatAmount)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_DescriptiveEditSkipsAllocationCheck() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoiceSent,
		VatType:   domain.VatStandard,
		IssueDate: issue,
		DueDate:   issue.AddDate(0, 1, 0),
		Items: []domain.InvoiceItem{
			{ItemID: uuid.NewString(), InvoiceID: invoiceID, Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockSettingsSvc.On("GetVatSettings", ctx, suite.companyID).Return(&suite.settings, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceFinancials", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.companyID, invoiceID, dto.UpdateInvoiceRequest{CustomerName: strPtr("Corrected LLC")}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Corrected LLC", updated.CustomerName)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CountAllocationsByInvoiceID", mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_OtherCompanyReadsAsNotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: uuid.NewString(),
		Status:    domain.InvoiceDraft,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, suite.companyID, invoiceID, dto.UpdateInvoiceRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(updated)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_DraftToSent() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoiceDraft,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.InvoiceSent, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoiceStatus(ctx, suite.companyID, invoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, updated.Status)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PaidCannotBeCancelled() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoicePaid,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateInvoiceStatus(ctx, suite.companyID, invoiceID, domain.InvoiceCancelled, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_ReadsOverduePastDueDate() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:         invoiceID,
		CompanyID:         suite.companyID,
		Status:            domain.InvoiceSent,
		DueDate:           time.Now().UTC().AddDate(0, 0, -3),
		TotalWithVAT:      decimal.NewFromInt(100),
		OutstandingAmount: decimal.NewFromInt(100),
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	got, err := suite.service.GetInvoiceByID(ctx, suite.companyID, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceOverdue, got.Status)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_StaleOverdueSettlesToPaid() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:         invoiceID,
		CompanyID:         suite.companyID,
		Status:            domain.InvoiceOverdue,
		DueDate:           time.Now().UTC().AddDate(0, 0, -3),
		TotalWithVAT:      decimal.NewFromInt(100),
		OutstandingAmount: decimal.Zero,
	}
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	got, err := suite.service.GetInvoiceByID(ctx, suite.companyID, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, got.Status)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
