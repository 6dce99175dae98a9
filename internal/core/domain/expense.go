package domain

import "github.com/shopspring/decimal"

// Expense is a gasto. When DrawsFromCentralCash is set the expense debits
// the caja mayor and mirrors into the pharmacy ledger; otherwise it is a
// bookkeeping record with no ledger effect.
//
// DrawsFromCentralCash is stored at creation time and authoritative. The
// older behaviour of deriving it from a ledger-entry existence check
// survives only as a consistency verification (see ExpenseService.VerifyLedgerLink).
type Expense struct {
	ExpenseID            string          `json:"expenseID"`
	Category             string          `json:"category"`
	Concept              string          `json:"concept"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             Currency        `json:"currency"`
	DrawsFromCentralCash bool            `json:"drawsFromCentralCash"`
	AuditFields
}
