package services

import (
	"context"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/dto"
)

// ExchangeCancellation bundles the result of a cancel: the terminal
// exchange, the untouched originals and the appended compensations.
type ExchangeCancellation struct {
	Exchange            *domain.CurrencyExchange
	OriginalEntries     []domain.LedgerEntry
	CompensatingEntries []domain.LedgerEntry
}

// ExchangeSvcFacade orchestrates currency exchanges against the ledger.
type ExchangeSvcFacade interface {
	CreateExchange(ctx context.Context, req dto.CreateExchangeRequest, actorID string) (*domain.CurrencyExchange, []domain.LedgerEntry, error)
	CancelExchange(ctx context.Context, exchangeID string, reason string, actorID string) (*ExchangeCancellation, error)
	GetExchange(ctx context.Context, exchangeID string) (*domain.CurrencyExchange, error)
	ListExchanges(ctx context.Context, params dto.ListExchangesParams) (*dto.ListExchangesResponse, error)
}

// ExpenseSvcFacade orchestrates expenses, including the dual-ledger
// propagation for central-cash expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, *domain.LedgerEntry, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string, actorID string) (*dto.DeleteExpenseResponse, error)
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)

	// VerifyLedgerLink cross-checks the stored DrawsFromCentralCash flag
	// against the ledger and reports a mismatch as an integrity error.
	VerifyLedgerLink(ctx context.Context, expenseID string) error
}

// DepositSvcFacade orchestrates bank deposits against the ledger.
type DepositSvcFacade interface {
	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, actorID string) (*domain.BankDeposit, *domain.LedgerEntry, error)
	CancelDeposit(ctx context.Context, depositID string, reason string, actorID string) (*domain.BankDeposit, *domain.LedgerEntry, error)
	ListDeposits(ctx context.Context, limit int, nextToken *string) (*dto.ListDepositsResponse, error)
}

// AdvanceSvcFacade orchestrates cash advances (vales) and their returns.
type AdvanceSvcFacade interface {
	CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest, actorID string) (*domain.CashAdvance, *domain.LedgerEntry, error)
	RegisterReturn(ctx context.Context, advanceID string, req dto.RegisterReturnRequest, actorID string) (*domain.CashAdvance, *domain.LedgerEntry, error)
	CancelAdvance(ctx context.Context, advanceID string, reason string, actorID string) (*domain.CashAdvance, *domain.LedgerEntry, error)
	ListAdvances(ctx context.Context, limit int, nextToken *string) (*dto.ListAdvancesResponse, error)
}

// ServicePaymentSvcFacade orchestrates Aquipago/Wepa payouts.
type ServicePaymentSvcFacade interface {
	CreatePayment(ctx context.Context, req dto.CreateServicePaymentRequest, actorID string) (*domain.ServicePayment, *domain.LedgerEntry, error)
	CancelPayment(ctx context.Context, paymentID string, reason string, actorID string) (*domain.ServicePayment, *domain.LedgerEntry, error)
	ListPayments(ctx context.Context, provider *domain.ServiceProvider, limit int, nextToken *string) (*dto.ListServicePaymentsResponse, error)
}
