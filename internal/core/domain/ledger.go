package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tags a ledger entry with the operation type that produced it.
type EntryKind string

const (
	KindExchange                   EntryKind = "EXCHANGE"
	KindExchangeCancellation       EntryKind = "EXCHANGE_CANCELLATION"
	KindExpense                    EntryKind = "EXPENSE"
	KindExpenseReversal            EntryKind = "EXPENSE_REVERSAL"
	KindDeposit                    EntryKind = "DEPOSIT"
	KindDepositCancellation        EntryKind = "DEPOSIT_CANCELLATION"
	KindCashAdvance                EntryKind = "CASH_ADVANCE"
	KindCashReturn                 EntryKind = "CASH_RETURN"
	KindAdvanceCancellation        EntryKind = "ADVANCE_CANCELLATION"
	KindServicePayment             EntryKind = "SERVICE_PAYMENT"
	KindServicePaymentCancellation EntryKind = "SERVICE_PAYMENT_CANCELLATION"
	KindAdjustment                 EntryKind = "ADJUSTMENT"
)

// CancellationSuffix is appended to an operation's ID to derive the
// operation ID carried by its compensating entries. Original-entry lookups
// match the bare operation ID, so compensating entries never collide with
// the entries they reverse.
const CancellationSuffix = "-ANULADO"

// CancellationOperationID derives the operation ID for compensating entries.
func CancellationOperationID(operationID string) string {
	return operationID + CancellationSuffix
}

// LedgerEntry is one row of the caja mayor ledger: a single currency
// movement together with the running balance it produced. Entries are
// append-only; a committed entry is never mutated or deleted.
type LedgerEntry struct {
	EntryID       int64           `json:"entryID"` // serial; defines ledger order
	Kind          EntryKind       `json:"kind"`
	OperationID   string          `json:"operationID"` // correlates to the external operation
	Currency      Currency        `json:"currency"`
	Amount        decimal.Decimal `json:"amount"` // non-negative magnitude
	IsCredit      bool            `json:"isCredit"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Concept       string          `json:"concept"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// SignedAmount returns the entry's magnitude signed by its direction:
// positive for credits, negative for debits.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.IsCredit {
		return e.Amount
	}
	return e.Amount.Neg()
}

// EntryIntent describes a ledger write before balances are known. Services
// build intents; the append engine resolves them into full entries inside
// the enclosing storage transaction, where the tail balance can be read
// under lock.
type EntryIntent struct {
	Kind        EntryKind
	OperationID string
	Currency    Currency
	Amount      decimal.Decimal
	IsCredit    bool
	Concept     string
	CreatedBy   string
}

// Validate rejects intents that could never become a legal entry.
func (i EntryIntent) Validate() error {
	if !i.Currency.IsValid() {
		return fmt.Errorf("invalid currency %q", i.Currency)
	}
	if i.Amount.IsNegative() {
		return fmt.Errorf("entry amount must not be negative, got %s", i.Amount)
	}
	if i.OperationID == "" {
		return fmt.Errorf("entry operation ID is required")
	}
	return nil
}

// Resolve computes the running-balance pair for the intent given the
// balance before the write, yielding the entry to persist. It enforces
// balanceAfter = balanceBefore ± amount, the ledger's core invariant.
func (i EntryIntent) Resolve(balanceBefore decimal.Decimal, at time.Time) LedgerEntry {
	balanceAfter := balanceBefore.Sub(i.Amount)
	if i.IsCredit {
		balanceAfter = balanceBefore.Add(i.Amount)
	}
	return LedgerEntry{
		Kind:          i.Kind,
		OperationID:   i.OperationID,
		Currency:      i.Currency,
		Amount:        i.Amount,
		IsCredit:      i.IsCredit,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Concept:       i.Concept,
		CreatedAt:     at,
		CreatedBy:     i.CreatedBy,
	}
}

// CompensatingIntent builds the intent that reverses e: same currency and
// magnitude, opposite direction, derived operation ID.
func (e LedgerEntry) CompensatingIntent(kind EntryKind, concept string, actorID string) EntryIntent {
	return EntryIntent{
		Kind:        kind,
		OperationID: CancellationOperationID(e.OperationID),
		Currency:    e.Currency,
		Amount:      e.Amount,
		IsCredit:    !e.IsCredit,
		Concept:     concept,
		CreatedBy:   actorID,
	}
}

// EntryFilter narrows ledger reads for listings and aggregation.
// Nil fields mean "no restriction".
type EntryFilter struct {
	Currency    *Currency
	Kinds       []EntryKind
	OperationID *string
	From        *time.Time
	To          *time.Time
}
