package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the row shape of caja_mayor_movimientos. The id column is
// a bigserial; ordering by it is the ledger order.
type LedgerEntry struct {
	EntryID       int64           `json:"entryID"`
	Kind          string          `json:"kind"`
	OperationID   string          `json:"operationID"`
	Currency      string          `json:"currency"` // internal lowercase name
	Amount        decimal.Decimal `json:"amount"`
	IsCredit      bool            `json:"isCredit"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Concept       string          `json:"concept"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// PharmacyEntry is the row shape of movimientos_farmacia.
type PharmacyEntry struct {
	EntryID   int64           `json:"entryID"`
	Concept   string          `json:"concept"`
	Amount    decimal.Decimal `json:"amount"` // signed
	Currency  string          `json:"currency"`
	ExpenseID *string         `json:"expenseID"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}
