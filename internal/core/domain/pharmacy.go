package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PharmacyEntry is one row of the movimientos farmacia shadow ledger. It
// mirrors central-cash expenses with the sign inverted so the pharmacy
// balance sheet can be reported independently of the caja mayor.
//
// Unlike LedgerEntry this table is not append-only: when a central-cash
// expense is reversed its mirror rows are deleted outright, while the caja
// mayor keeps the compensating entry. The asymmetry is deliberate; the
// pharmacy sheet tracks present state, the caja mayor keeps history.
type PharmacyEntry struct {
	EntryID   int64           `json:"entryID"`
	Concept   string          `json:"concept"`
	Amount    decimal.Decimal `json:"amount"` // signed; expense mirrors are negative
	Currency  Currency        `json:"currency"`
	ExpenseID *string         `json:"expenseID,omitempty"` // set when mirroring an expense
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}
