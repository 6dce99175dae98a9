package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/core/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ServicePaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockServicePaymentRepository
	mockLedgerRepo  *MockLedgerRepository
	mockPublisher   *MockPublisher
	service         *services.ServicePaymentService
}

func (suite *ServicePaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockServicePaymentRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPublisher = new(MockPublisher)
	suite.service = services.NewServicePaymentService(suite.mockPaymentRepo, suite.mockLedgerRepo, suite.mockPublisher)
}

func activePayment(paymentID string, amount int64) *domain.ServicePayment {
	return &domain.ServicePayment{
		PaymentID:     paymentID,
		Provider:      domain.ProviderAquipago,
		VoucherNumber: "V-9910",
		Amount:        decimal.NewFromInt(amount),
		Currency:      domain.Guaranies,
		Concept:       "Pago factura ANDE",
		Status:        domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2025, 8, 13, 11, 0, 0, 0, time.UTC),
			CreatedBy: "user-1",
		},
	}
}

func (suite *ServicePaymentServiceTestSuite) TestCreatePayment_DebitsDrawer() {
	ctx := context.Background()
	req := dto.CreateServicePaymentRequest{
		Provider:      "AQUIPAGO",
		VoucherNumber: "V-9910",
		Amount:        decimal.NewFromInt(250000),
		CurrencyCode:  "PYG",
		Concept:       "Pago factura ANDE",
	}

	suite.mockPaymentRepo.On("SavePaymentWithEntry", ctx, mock.AnythingOfType("domain.ServicePayment"), mock.AnythingOfType("domain.EntryIntent")).
		Return(savedEntry(30, domain.EntryIntent{
			Kind: domain.KindServicePayment, OperationID: "p", Currency: domain.Guaranies,
			Amount: req.Amount, IsCredit: false, Concept: "Pago AQUIPAGO comprobante V-9910", CreatedBy: "user-1",
		}), nil).Once()
	suite.mockPublisher.On("PublishMovements", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	payment, entry, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ProviderAquipago, payment.Provider)
	suite.Equal(domain.StatusActive, payment.Status)
	suite.Equal(int64(30), entry.EntryID)

	intent := suite.mockPaymentRepo.Calls[0].Arguments.Get(2).(domain.EntryIntent)
	suite.Equal(domain.KindServicePayment, intent.Kind)
	suite.False(intent.IsCredit)
	suite.Equal(payment.PaymentID, intent.OperationID)
	suite.Equal("Pago AQUIPAGO comprobante V-9910", intent.Concept)
}

func (suite *ServicePaymentServiceTestSuite) TestCreatePayment_UnknownProviderRejected() {
	ctx := context.Background()
	req := dto.CreateServicePaymentRequest{
		Provider: "TIGO", VoucherNumber: "V-9910",
		Amount: decimal.NewFromInt(250000), CurrencyCode: "PYG",
	}

	_, _, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentWithEntry")
}

func (suite *ServicePaymentServiceTestSuite) TestCreatePayment_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateServicePaymentRequest{
		Provider: "WEPA", VoucherNumber: "V-9910",
		Amount: decimal.Zero, CurrencyCode: "PYG",
	}

	_, _, err := suite.service.CreatePayment(ctx, req, "user-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentWithEntry")
}

func (suite *ServicePaymentServiceTestSuite) TestCancelPayment_AppendsCompensatingCredit() {
	ctx := context.Background()
	payment := activePayment("pay-1", 250000)
	original := domain.LedgerEntry{
		EntryID:     30,
		Kind:        domain.KindServicePayment,
		OperationID: "pay-1",
		Currency:    domain.Guaranies,
		Amount:      decimal.NewFromInt(250000),
		IsCredit:    false,
		Concept:     "Pago AQUIPAGO comprobante V-9910",
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "pay-1").Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByOperation", ctx, "pay-1", domain.KindServicePayment).
		Return([]domain.LedgerEntry{original}, nil).Once()
	suite.mockPaymentRepo.On("CancelPaymentWithEntry", ctx, mock.AnythingOfType("domain.ServicePayment"), mock.AnythingOfType("domain.EntryIntent")).
		Return(savedEntry(31, original.CompensatingIntent(domain.KindServicePaymentCancellation, "Anulación pago servicio: comprobante duplicado", "user-2")), nil).Once()
	suite.mockPublisher.On("PublishMovements", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	cancelled, _, err := suite.service.CancelPayment(ctx, "pay-1", "comprobante duplicado", "user-2")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, cancelled.Status)
	suite.Contains(cancelled.Concept, domain.CancellationSuffix)

	intent := suite.mockPaymentRepo.Calls[1].Arguments.Get(2).(domain.EntryIntent)
	suite.Equal(domain.KindServicePaymentCancellation, intent.Kind)
	suite.True(intent.IsCredit)
	suite.True(intent.Amount.Equal(original.Amount))
	suite.Equal(domain.CancellationOperationID("pay-1"), intent.OperationID)
}

func (suite *ServicePaymentServiceTestSuite) TestCancelPayment_AlreadyCancelledConflicts() {
	ctx := context.Background()
	payment := activePayment("pay-1", 250000)
	payment.Status = domain.StatusCancelled

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "pay-1").Return(payment, nil).Once()

	_, _, err := suite.service.CancelPayment(ctx, "pay-1", "comprobante duplicado", "user-2")

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByOperation")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CancelPaymentWithEntry")
}

func (suite *ServicePaymentServiceTestSuite) TestCancelPayment_DuplicateLedgerEntriesIsIntegrityError() {
	ctx := context.Background()
	payment := activePayment("pay-1", 250000)
	original := domain.LedgerEntry{
		EntryID: 30, Kind: domain.KindServicePayment, OperationID: "pay-1",
		Currency: domain.Guaranies, Amount: decimal.NewFromInt(250000), IsCredit: false,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, "pay-1").Return(payment, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByOperation", ctx, "pay-1", domain.KindServicePayment).
		Return([]domain.LedgerEntry{original, original}, nil).Once()

	_, _, err := suite.service.CancelPayment(ctx, "pay-1", "comprobante duplicado", "user-2")

	suite.Require().ErrorIs(err, apperrors.ErrIntegrity)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CancelPaymentWithEntry")
}

func (suite *ServicePaymentServiceTestSuite) TestListPayments_FiltersByProvider() {
	ctx := context.Background()
	payment := activePayment("pay-1", 250000)
	provider := domain.ProviderAquipago

	suite.mockPaymentRepo.On("ListPayments", ctx, &provider, 10, (*string)(nil)).
		Return([]domain.ServicePayment{*payment}, nil, nil).Once()

	resp, err := suite.service.ListPayments(ctx, &provider, 10, nil)

	suite.Require().NoError(err)
	suite.Len(resp.Payments, 1)
	suite.Equal("AQUIPAGO", resp.Payments[0].Provider)
	suite.Nil(resp.NextToken)
}

func TestServicePaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServicePaymentServiceTestSuite))
}
