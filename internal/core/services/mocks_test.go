package services_test

import (
	"context"
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/events"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLastEntry(ctx context.Context, currency domain.Currency) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByOperation(ctx context.Context, operationID string, kind domain.EntryKind) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, operationID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}

func (m *MockLedgerRepository) FindEntriesForAggregation(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock ExchangeRepository ---
type MockExchangeRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRepositoryFacade = (*MockExchangeRepository)(nil)

func (m *MockExchangeRepository) FindExchangeByID(ctx context.Context, exchangeID string) (*domain.CurrencyExchange, error) {
	args := m.Called(ctx, exchangeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyExchange), args.Error(1)
}

func (m *MockExchangeRepository) ListExchanges(ctx context.Context, limit int, nextToken *string) ([]domain.CurrencyExchange, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.CurrencyExchange), token, args.Error(2)
}

func (m *MockExchangeRepository) SaveExchangeWithEntries(ctx context.Context, exchange domain.CurrencyExchange, intents []domain.EntryIntent) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, exchange, intents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockExchangeRepository) CancelExchangeWithEntries(ctx context.Context, exchange domain.CurrencyExchange, intents []domain.EntryIntent) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, exchange, intents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Expense), token, args.Error(2)
}

func (m *MockExpenseRepository) HasCentralLedgerEntry(ctx context.Context, expenseID string) (bool, error) {
	args := m.Called(ctx, expenseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, intent *domain.EntryIntent, mirror *domain.PharmacyEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, expense, intent, mirror)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpenseWithReversal(ctx context.Context, expenseID string, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, expenseID, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpenseWithCorrection(ctx context.Context, expense domain.Expense, intents []domain.EntryIntent, mirror *domain.PharmacyEntry) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, expense, intents, mirror)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

var _ portsrepo.RateRepositoryFacade = (*MockRateRepository)(nil)

func (m *MockRateRepository) FindLatestOnDay(ctx context.Context, at time.Time) (*domain.ExchangeRateSnapshot, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateSnapshot), args.Error(1)
}

func (m *MockRateRepository) FindLatestBefore(ctx context.Context, t time.Time) (*domain.ExchangeRateSnapshot, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateSnapshot), args.Error(1)
}

func (m *MockRateRepository) FindCurrent(ctx context.Context) (*domain.ExchangeRateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateSnapshot), args.Error(1)
}

func (m *MockRateRepository) FindLatest(ctx context.Context) (*domain.ExchangeRateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateSnapshot), args.Error(1)
}

// --- Mock PharmacyRepository ---
type MockPharmacyRepository struct {
	mock.Mock
}

var _ portsrepo.PharmacyRepositoryFacade = (*MockPharmacyRepository)(nil)

func (m *MockPharmacyRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.PharmacyEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.PharmacyEntry), token, args.Error(2)
}

func (m *MockPharmacyRepository) FindEntriesForAggregation(ctx context.Context, from, to *time.Time) ([]domain.PharmacyEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PharmacyEntry), args.Error(1)
}

func (m *MockPharmacyRepository) FindEntriesByExpenseID(ctx context.Context, expenseID string) ([]domain.PharmacyEntry, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PharmacyEntry), args.Error(1)
}

// --- Mock DepositRepository ---
type MockDepositRepository struct {
	mock.Mock
}

var _ portsrepo.DepositRepositoryFacade = (*MockDepositRepository)(nil)

func (m *MockDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankDeposit), args.Error(1)
}

func (m *MockDepositRepository) ListDeposits(ctx context.Context, limit int, nextToken *string) ([]domain.BankDeposit, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.BankDeposit), token, args.Error(2)
}

func (m *MockDepositRepository) SaveDepositWithEntry(ctx context.Context, deposit domain.BankDeposit, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, deposit, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockDepositRepository) CancelDepositWithEntry(ctx context.Context, deposit domain.BankDeposit, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, deposit, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock ServicePaymentRepository ---
type MockServicePaymentRepository struct {
	mock.Mock
}

var _ portsrepo.ServicePaymentRepositoryFacade = (*MockServicePaymentRepository)(nil)

func (m *MockServicePaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.ServicePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *MockServicePaymentRepository) ListPayments(ctx context.Context, provider *domain.ServiceProvider, limit int, nextToken *string) ([]domain.ServicePayment, *string, error) {
	args := m.Called(ctx, provider, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.ServicePayment), token, args.Error(2)
}

func (m *MockServicePaymentRepository) SavePaymentWithEntry(ctx context.Context, payment domain.ServicePayment, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, payment, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockServicePaymentRepository) CancelPaymentWithEntry(ctx context.Context, payment domain.ServicePayment, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, payment, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock MovementPublisher ---
type MockPublisher struct {
	mock.Mock
}

var _ events.MovementPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishMovements(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// --- Mock RateSvc ---
type MockRateSvc struct {
	mock.Mock
}

var _ portssvc.RateSvcFacade = (*MockRateSvc)(nil)

func (m *MockRateSvc) Resolve(ctx context.Context, at time.Time) (domain.ExchangeRateSnapshot, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(domain.ExchangeRateSnapshot), args.Error(1)
}

func (m *MockRateSvc) Current(ctx context.Context) (domain.ExchangeRateSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ExchangeRateSnapshot), args.Error(1)
}

// --- Mock AdvanceRepository ---
type MockAdvanceRepository struct {
	mock.Mock
}

var _ portsrepo.AdvanceRepositoryFacade = (*MockAdvanceRepository)(nil)

func (m *MockAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.CashAdvance, error) {
	args := m.Called(ctx, advanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAdvance), args.Error(1)
}

func (m *MockAdvanceRepository) ListAdvances(ctx context.Context, limit int, nextToken *string) ([]domain.CashAdvance, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.CashAdvance), token, args.Error(2)
}

func (m *MockAdvanceRepository) SaveAdvanceWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, advance, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockAdvanceRepository) RegisterReturnWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, advance, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockAdvanceRepository) CancelAdvanceWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, advance, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
