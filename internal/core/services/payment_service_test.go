package services_test

import (
	"context"
	"errors"
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

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo   *MockPaymentRepository
	mockInvoiceRepo   *MockInvoiceRepository
	mockAccountingSvc *MockAccountingWriter
	service           portssvc.PaymentSvcFacade
	companyID         string
	userID            string
	invoice           *domain.Invoice
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockAccountingSvc = new(MockAccountingWriter)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockInvoiceRepo, suite.mockAccountingSvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.invoice = &domain.Invoice{
		InvoiceID:         uuid.NewString(),
		CompanyID:         suite.companyID,
		InvoiceNumber:     "INV-2026-0007",
		Status:            domain.InvoiceSent,
		TotalWithVAT:      decimal.NewFromFloat(262.50),
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.NewFromFloat(262.50),
	}
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Success() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		InvoiceID:   suite.invoice.InvoiceID,
		Amount:      decimal.NewFromInt(100),
		Method:      "BANK_TRANSFER",
		PaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoice.InvoiceID).Return(suite.invoice, nil).Once()

	var persisted domain.Payment
	var allocation domain.PaymentAllocation
	suite.mockPaymentRepo.On("CreatePaymentWithAllocation", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.PaymentAllocation")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(domain.Payment)
			allocation = args.Get(2).(domain.PaymentAllocation)
		}).
		Return(&domain.Payment{PaymentID: "saved", PaymentNumber: "PAY-2026-0001"}, nil).Once()

	created, err := suite.service.CreatePayment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("PAY-2026-0001", created.PaymentNumber)

	suite.Equal(domain.PaymentPending, persisted.Status)
	suite.Equal(domain.MethodBankTransfer, persisted.Method)
	suite.Equal(suite.companyID, persisted.CompanyID)
	suite.True(persisted.Amount.Equal(req.Amount))
	suite.Equal(persisted.PaymentID, allocation.PaymentID)
	suite.Equal(suite.invoice.InvoiceID, allocation.InvoiceID)
	suite.True(allocation.AllocatedAmount.Equal(req.Amount))

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_DraftInvoiceRejected() {
	ctx := context.Background()
	suite.invoice.Status = domain.InvoiceDraft
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoice.InvoiceID).Return(suite.invoice, nil).Once()

	created, err := suite.service.CreatePayment(ctx, suite.companyID, dto.CreatePaymentRequest{
		InvoiceID:   suite.invoice.InvoiceID,
		Amount:      decimal.NewFromInt(50),
		Method:      "CASH",
		PaymentDate: time.Now().UTC(),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(created)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePaymentWithAllocation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	ctx := context.Background()

	created, err := suite.service.CreatePayment(ctx, suite.companyID, dto.CreatePaymentRequest{
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.Zero,
		Method:    "CASH",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnknownMethod() {
	ctx := context.Background()

	created, err := suite.service.CreatePayment(ctx, suite.companyID, dto.CreatePaymentRequest{
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromInt(10),
		Method:    "BARTER",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_PostsJournal() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	pending := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromInt(100),
		Method:    domain.MethodBankTransfer,
		Status:    domain.PaymentPending,
	}
	confirmed := *pending
	confirmed.Status = domain.PaymentConfirmed

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(pending, nil).Twice()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentConfirmed, (*decimal.Decimal)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(&confirmed, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoice.InvoiceID).Return(suite.invoice, nil).Once()
	suite.mockAccountingSvc.On("PostPaymentJournal", ctx, confirmed, *suite.invoice, domain.SourcePaymentConfirmation, suite.userID).Return(nil).Once()

	got, err := suite.service.ConfirmPayment(ctx, suite.companyID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentConfirmed, got.Status)
	suite.mockAccountingSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_AlreadyConfirmedIsNoOp() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	confirmed := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromInt(100),
		Method:    domain.MethodBankTransfer,
		Status:    domain.PaymentConfirmed,
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(confirmed, nil).Once()

	got, err := suite.service.ConfirmPayment(ctx, suite.companyID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentConfirmed, got.Status)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountingSvc.AssertNotCalled(suite.T(), "PostPaymentJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestConfirmPayment_JournalFailureIsNotFatal() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	pending := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromInt(100),
		Method:    domain.MethodCash,
		Status:    domain.PaymentPending,
	}
	confirmed := *pending
	confirmed.Status = domain.PaymentConfirmed

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(pending, nil).Twice()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentConfirmed, (*decimal.Decimal)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(&confirmed, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoice.InvoiceID).Return(suite.invoice, nil).Once()
	suite.mockAccountingSvc.On("PostPaymentJournal", ctx, confirmed, *suite.invoice, domain.SourcePaymentConfirmation, suite.userID).Return(errors.New("ledger unavailable")).Once()

	got, err := suite.service.ConfirmPayment(ctx, suite.companyID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentConfirmed, got.Status)
}

func (suite *PaymentServiceTestSuite) TestRefundPayment_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	refund := decimal.NewFromFloat(262.50)
	confirmed := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromFloat(262.50),
		Method:    domain.MethodCard,
		Status:    domain.PaymentConfirmed,
	}
	refunded := *confirmed
	refunded.Status = domain.PaymentRefunded
	refunded.RefundAmount = &refund

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(confirmed, nil).Twice()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentRefunded, &refund, suite.userID, mock.AnythingOfType("time.Time")).Return(&refunded, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoice.InvoiceID).Return(suite.invoice, nil).Once()
	suite.mockAccountingSvc.On("PostPaymentJournal", ctx, refunded, *suite.invoice, domain.SourcePaymentRefund, suite.userID).Return(nil).Once()

	got, err := suite.service.RefundPayment(ctx, suite.companyID, paymentID, refund, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRefunded, got.Status)
	suite.Require().NotNil(got.RefundAmount)
	suite.True(got.RefundAmount.Equal(refund))
	suite.mockAccountingSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRefundPayment_PendingPaymentSkipsJournal() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	refund := decimal.NewFromInt(100)
	pending := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromInt(100),
		Method:    domain.MethodBankTransfer,
		Status:    domain.PaymentPending,
	}
	refunded := *pending
	refunded.Status = domain.PaymentRefunded
	refunded.RefundAmount = &refund

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(pending, nil).Twice()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentRefunded, &refund, suite.userID, mock.AnythingOfType("time.Time")).Return(&refunded, nil).Once()

	got, err := suite.service.RefundPayment(ctx, suite.companyID, paymentID, refund, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRefunded, got.Status)
	// A payment that never reached the ledger has no entry to reverse.
	suite.mockAccountingSvc.AssertNotCalled(suite.T(), "PostPaymentJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRefundPayment_ExceedsPaymentAmount() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	confirmed := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		InvoiceID: suite.invoice.InvoiceID,
		Amount:    decimal.NewFromInt(100),
		Status:    domain.PaymentConfirmed,
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(confirmed, nil).Once()

	got, err := suite.service.RefundPayment(ctx, suite.companyID, paymentID, decimal.NewFromInt(150), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentStatus_ConfirmedRequiresDedicatedOperation() {
	ctx := context.Background()

	got, err := suite.service.UpdatePaymentStatus(ctx, suite.companyID, uuid.NewString(), domain.PaymentConfirmed, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
}

func (suite *PaymentServiceTestSuite) TestUpdatePaymentStatus_TerminalStateRejected() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	failed := &domain.Payment{
		PaymentID: paymentID,
		CompanyID: suite.companyID,
		Status:    domain.PaymentFailed,
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(failed, nil).Once()

	got, err := suite.service.UpdatePaymentStatus(ctx, suite.companyID, paymentID, domain.PaymentCancelled, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(got)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentSummary_InvalidPeriod() {
	ctx := context.Background()
	from := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := suite.service.GetPaymentSummary(ctx, suite.companyID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
}

func (suite *PaymentServiceTestSuite) TestRecalculateInvoiceAmounts_TenantScoped() {
	ctx := context.Background()
	other := *suite.invoice
	other.CompanyID = uuid.NewString()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.invoice.InvoiceID).Return(&other, nil).Once()

	err := suite.service.RecalculateInvoiceAmounts(ctx, suite.companyID, suite.invoice.InvoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "RecalculateInvoiceAmounts", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
