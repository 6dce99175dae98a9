package services_test

import (
	"context"
	"testing"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/core/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockLedgerRepo  *MockLedgerRepository
	mockPublisher   *MockPublisher
	service         portssvc.ExpenseSvcFacade
	actorID         string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPublisher = new(MockPublisher)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockLedgerRepo, suite.mockPublisher)
	suite.actorID = uuid.NewString()
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_CentralCashWritesBothLedgers() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Category:             "insumos",
		Concept:              "Compra de resmas",
		Amount:               decimal.NewFromInt(150000),
		CurrencyCode:         "PYG",
		DrawsFromCentralCash: true,
	}

	entry := &domain.LedgerEntry{EntryID: 5, Kind: domain.KindExpense, Currency: domain.Guaranies}
	suite.mockExpenseRepo.On("SaveExpense", ctx,
		mock.AnythingOfType("domain.Expense"),
		mock.AnythingOfType("*domain.EntryIntent"),
		mock.AnythingOfType("*domain.PharmacyEntry")).Return(entry, nil).Once()
	suite.mockPublisher.On("PublishMovements", ctx, []domain.LedgerEntry{*entry}).Return(nil).Once()

	expense, savedEntry, err := suite.service.CreateExpense(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(savedEntry)
	suite.True(expense.DrawsFromCentralCash)

	call := suite.mockExpenseRepo.Calls[0]
	intent := call.Arguments.Get(2).(*domain.EntryIntent)
	mirror := call.Arguments.Get(3).(*domain.PharmacyEntry)
	suite.Require().NotNil(intent)
	suite.Require().NotNil(mirror)
	suite.Equal(domain.KindExpense, intent.Kind)
	suite.False(intent.IsCredit)
	suite.Equal(expense.ExpenseID, intent.OperationID)
	// The mirror row carries the inverted sign.
	suite.True(mirror.Amount.Equal(decimal.NewFromInt(-150000)))
	suite.Require().NotNil(mirror.ExpenseID)
	suite.Equal(expense.ExpenseID, *mirror.ExpenseID)

	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonCentralSkipsLedger() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Category:     "varios",
		Concept:      "Gasto menor",
		Amount:       decimal.NewFromInt(20000),
		CurrencyCode: "PYG",
	}

	suite.mockExpenseRepo.On("SaveExpense", ctx,
		mock.AnythingOfType("domain.Expense"),
		(*domain.EntryIntent)(nil),
		(*domain.PharmacyEntry)(nil)).Return(nil, nil).Once()

	expense, entry, err := suite.service.CreateExpense(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.False(expense.DrawsFromCentralCash)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishMovements")
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_CentralCashAppendsReversal() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID:            expenseID,
		Concept:              "Compra de resmas",
		Amount:               decimal.NewFromInt(150000),
		Currency:             domain.Guaranies,
		DrawsFromCentralCash: true,
	}
	original := domain.LedgerEntry{
		EntryID: 5, Kind: domain.KindExpense, OperationID: expenseID,
		Currency: domain.Guaranies, Amount: decimal.NewFromInt(150000), IsCredit: false,
	}
	compensating := &domain.LedgerEntry{
		EntryID: 9, Kind: domain.KindExpenseReversal,
		OperationID: domain.CancellationOperationID(expenseID),
		Currency:    domain.Guaranies, Amount: decimal.NewFromInt(150000), IsCredit: true,
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByOperation", ctx, expenseID, domain.KindExpense).Return([]domain.LedgerEntry{original}, nil).Once()
	suite.mockExpenseRepo.On("DeleteExpenseWithReversal", ctx, expenseID,
		mock.AnythingOfType("domain.EntryIntent")).Return(compensating, nil).Once()
	suite.mockPublisher.On("PublishMovements", ctx, []domain.LedgerEntry{*compensating}).Return(nil).Once()

	resp, err := suite.service.DeleteExpense(ctx, expenseID, suite.actorID)

	suite.Require().NoError(err)
	suite.True(resp.CentralCashPath)
	suite.Require().NotNil(resp.CompensatingEntry)
	suite.Equal(int64(9), resp.CompensatingEntry.EntryID)

	var deleteCall *mock.Call
	for i := range suite.mockExpenseRepo.Calls {
		if suite.mockExpenseRepo.Calls[i].Method == "DeleteExpenseWithReversal" {
			deleteCall = &suite.mockExpenseRepo.Calls[i]
		}
	}
	suite.Require().NotNil(deleteCall)
	intent := deleteCall.Arguments.Get(2).(domain.EntryIntent)
	suite.True(intent.IsCredit)
	suite.Equal(domain.CancellationOperationID(expenseID), intent.OperationID)

	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_NonCentralDeletesRowOnly() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{ExpenseID: expenseID, Currency: domain.Guaranies}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("DeleteExpense", ctx, expenseID).Return(nil).Once()

	resp, err := suite.service.DeleteExpense(ctx, expenseID, suite.actorID)

	suite.Require().NoError(err)
	suite.False(resp.CentralCashPath)
	suite.Nil(resp.CompensatingEntry)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByOperation")
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_MissingLedgerEntryIsIntegrityError() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID:            expenseID,
		Currency:             domain.Guaranies,
		DrawsFromCentralCash: true,
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByOperation", ctx, expenseID, domain.KindExpense).Return([]domain.LedgerEntry{}, nil).Once()

	_, err := suite.service.DeleteExpense(ctx, expenseID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpenseWithReversal")
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_CentralCashEmitsCorrectionPair() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID:            expenseID,
		Category:             "insumos",
		Concept:              "Compra de resmas",
		Amount:               decimal.NewFromInt(150000),
		Currency:             domain.Guaranies,
		DrawsFromCentralCash: true,
	}
	original := domain.LedgerEntry{
		EntryID: 5, Kind: domain.KindExpense, OperationID: expenseID,
		Currency: domain.Guaranies, Amount: decimal.NewFromInt(150000), IsCredit: false,
	}
	corrected := []domain.LedgerEntry{
		{EntryID: 9, Kind: domain.KindExpenseReversal, IsCredit: true},
		{EntryID: 10, Kind: domain.KindExpense, IsCredit: false},
	}

	newAmount := decimal.NewFromInt(180000)
	req := dto.UpdateExpenseRequest{Amount: &newAmount}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByOperation", ctx, expenseID, domain.KindExpense).Return([]domain.LedgerEntry{original}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseWithCorrection", ctx,
		mock.AnythingOfType("domain.Expense"),
		mock.AnythingOfType("[]domain.EntryIntent"),
		mock.AnythingOfType("*domain.PharmacyEntry")).Return(corrected, nil).Once()
	suite.mockPublisher.On("PublishMovements", ctx, corrected).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, expenseID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))

	var correctionCall *mock.Call
	for i := range suite.mockExpenseRepo.Calls {
		if suite.mockExpenseRepo.Calls[i].Method == "UpdateExpenseWithCorrection" {
			correctionCall = &suite.mockExpenseRepo.Calls[i]
		}
	}
	suite.Require().NotNil(correctionCall)
	intents := correctionCall.Arguments.Get(2).([]domain.EntryIntent)
	suite.Require().Len(intents, 2)
	// Reversal of the original, then a fresh debit for the new amount.
	suite.Equal(domain.KindExpenseReversal, intents[0].Kind)
	suite.True(intents[0].IsCredit)
	suite.True(intents[0].Amount.Equal(decimal.NewFromInt(150000)))
	suite.Equal(domain.KindExpense, intents[1].Kind)
	suite.False(intents[1].IsCredit)
	suite.True(intents[1].Amount.Equal(newAmount))
	suite.Equal(expenseID, intents[1].OperationID)

	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_CurrencyChangeRepostsInNewCurrency() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID:            expenseID,
		Category:             "insumos",
		Concept:              "Compra de insumos",
		Amount:               decimal.NewFromInt(50),
		Currency:             domain.Guaranies,
		DrawsFromCentralCash: true,
	}
	original := domain.LedgerEntry{
		EntryID: 5, Kind: domain.KindExpense, OperationID: expenseID,
		Currency: domain.Guaranies, Amount: decimal.NewFromInt(50), IsCredit: false,
	}
	corrected := []domain.LedgerEntry{
		{EntryID: 9, Kind: domain.KindExpenseReversal, IsCredit: true},
		{EntryID: 10, Kind: domain.KindExpense, IsCredit: false},
	}

	usd := "USD"
	req := dto.UpdateExpenseRequest{CurrencyCode: &usd}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByOperation", ctx, expenseID, domain.KindExpense).Return([]domain.LedgerEntry{original}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseWithCorrection", ctx,
		mock.AnythingOfType("domain.Expense"),
		mock.AnythingOfType("[]domain.EntryIntent"),
		mock.AnythingOfType("*domain.PharmacyEntry")).Return(corrected, nil).Once()
	suite.mockPublisher.On("PublishMovements", ctx, corrected).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, expenseID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Dolares, updated.Currency)

	var correctionCall *mock.Call
	for i := range suite.mockExpenseRepo.Calls {
		if suite.mockExpenseRepo.Calls[i].Method == "UpdateExpenseWithCorrection" {
			correctionCall = &suite.mockExpenseRepo.Calls[i]
		}
	}
	suite.Require().NotNil(correctionCall)
	intents := correctionCall.Arguments.Get(2).([]domain.EntryIntent)
	suite.Require().Len(intents, 2)
	// The reversal credits the original currency's column, the re-post
	// debits the new one.
	suite.Equal(domain.Guaranies, intents[0].Currency)
	suite.Equal(domain.Dolares, intents[1].Currency)
	mirror := correctionCall.Arguments.Get(3).(*domain.PharmacyEntry)
	suite.Require().NotNil(mirror)
	suite.Equal(domain.Dolares, mirror.Currency)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_UnknownCurrencyRejected() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID: expenseID,
		Amount:    decimal.NewFromInt(20000),
		Currency:  domain.Guaranies,
	}

	bad := "EUR"
	req := dto.UpdateExpenseRequest{CurrencyCode: &bad}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()

	_, err := suite.service.UpdateExpense(ctx, expenseID, req, suite.actorID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense")
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseWithCorrection")
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NonCentralUpdatesInPlace() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID: expenseID,
		Concept:   "Gasto menor",
		Amount:    decimal.NewFromInt(20000),
		Currency:  domain.Guaranies,
	}

	newConcept := "Gasto menor corregido"
	req := dto.UpdateExpenseRequest{Concept: &newConcept}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, expenseID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(newConcept, updated.Concept)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseWithCorrection")
}

func (suite *ExpenseServiceTestSuite) TestVerifyLedgerLink_MismatchIsIntegrityError() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{
		ExpenseID:            expenseID,
		DrawsFromCentralCash: true,
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("HasCentralLedgerEntry", ctx, expenseID).Return(false, nil).Once()

	err := suite.service.VerifyLedgerLink(ctx, expenseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
}

func (suite *ExpenseServiceTestSuite) TestVerifyLedgerLink_Agreement() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	expense := &domain.Expense{ExpenseID: expenseID, DrawsFromCentralCash: true}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("HasCentralLedgerEntry", ctx, expenseID).Return(true, nil).Once()

	suite.NoError(suite.service.VerifyLedgerLink(ctx, expenseID))
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
