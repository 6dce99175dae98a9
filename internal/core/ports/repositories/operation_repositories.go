package repositories

import (
	"context"

	"github.com/cajacentral/caja_backend/internal/core/domain"
)

// DepositRepositoryFacade persists bank deposits and their ledger coupling.
// Write methods are single atomic units.
type DepositRepositoryFacade interface {
	FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error)
	ListDeposits(ctx context.Context, limit int, nextToken *string) ([]domain.BankDeposit, *string, error)

	// SaveDepositWithEntry persists the deposit and appends its debit entry.
	SaveDepositWithEntry(ctx context.Context, deposit domain.BankDeposit, intent domain.EntryIntent) (*domain.LedgerEntry, error)

	// CancelDepositWithEntry marks the deposit cancelled and appends the
	// compensating credit.
	CancelDepositWithEntry(ctx context.Context, deposit domain.BankDeposit, intent domain.EntryIntent) (*domain.LedgerEntry, error)
}

// AdvanceRepositoryFacade persists cash advances (vales) and their returns.
type AdvanceRepositoryFacade interface {
	FindAdvanceByID(ctx context.Context, advanceID string) (*domain.CashAdvance, error)
	ListAdvances(ctx context.Context, limit int, nextToken *string) ([]domain.CashAdvance, *string, error)

	// SaveAdvanceWithEntry persists the advance and appends its debit entry.
	SaveAdvanceWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error)

	// RegisterReturnWithEntry updates the returned amount and appends the
	// return's credit entry in the same unit.
	RegisterReturnWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error)

	// CancelAdvanceWithEntry marks the advance cancelled and appends the
	// compensating credit.
	CancelAdvanceWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error)
}

// ServicePaymentRepositoryFacade persists Aquipago/Wepa payments.
type ServicePaymentRepositoryFacade interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.ServicePayment, error)
	ListPayments(ctx context.Context, provider *domain.ServiceProvider, limit int, nextToken *string) ([]domain.ServicePayment, *string, error)

	// SavePaymentWithEntry persists the payment and appends its debit entry.
	SavePaymentWithEntry(ctx context.Context, payment domain.ServicePayment, intent domain.EntryIntent) (*domain.LedgerEntry, error)

	// CancelPaymentWithEntry marks the payment cancelled and appends the
	// compensating credit.
	CancelPaymentWithEntry(ctx context.Context, payment domain.ServicePayment, intent domain.EntryIntent) (*domain.LedgerEntry, error)
}
