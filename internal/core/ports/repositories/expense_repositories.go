package repositories

import (
	"context"

	"github.com/cajacentral/caja_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense records.
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a paginated list of expenses, newest first.
	ListExpenses(ctx context.Context, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// HasCentralLedgerEntry reports whether a KindExpense ledger entry
	// exists for the expense. Kept as a consistency verification against
	// the stored DrawsFromCentralCash flag, not as the source of truth.
	HasCentralLedgerEntry(ctx context.Context, expenseID string) (bool, error)
}

// ExpenseWriter defines write operations for expense records. Methods that
// touch the ledger or the pharmacy mirror are single atomic units.
type ExpenseWriter interface {
	// SaveExpense persists the expense and, when intent and mirror are
	// non-nil, the central-ledger debit and the pharmacy mirror row in the
	// same unit.
	SaveExpense(ctx context.Context, expense domain.Expense, intent *domain.EntryIntent, mirror *domain.PharmacyEntry) (*domain.LedgerEntry, error)

	// DeleteExpense removes an expense that never touched the ledger.
	DeleteExpense(ctx context.Context, expenseID string) error

	// DeleteExpenseWithReversal, in one unit: deletes the pharmacy mirror
	// rows, appends the compensating central-ledger credit, and deletes the
	// expense row. The compensating entry outlives its source on purpose.
	DeleteExpenseWithReversal(ctx context.Context, expenseID string, intent domain.EntryIntent) (*domain.LedgerEntry, error)

	// UpdateExpenseWithCorrection, in one unit: updates the expense row,
	// appends the correction pair (reversal of the original entry plus a
	// fresh entry for the corrected values), and replaces the pharmacy
	// mirror row.
	UpdateExpenseWithCorrection(ctx context.Context, expense domain.Expense, intents []domain.EntryIntent, mirror *domain.PharmacyEntry) ([]domain.LedgerEntry, error)

	// UpdateExpense updates an expense that never touched the ledger.
	UpdateExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
