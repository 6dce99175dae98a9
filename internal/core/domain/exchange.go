package domain

import "github.com/shopspring/decimal"

// CurrencyExchange is a cambio operation: cash taken from one drawer and
// the converted amount placed in another. Creating one appends exactly two
// ledger entries (debit source, credit destination); cancelling appends the
// two compensating entries and never touches the originals.
type CurrencyExchange struct {
	ExchangeID     string          `json:"exchangeID"`
	SourceCurrency Currency        `json:"sourceCurrency"`
	DestCurrency   Currency        `json:"destCurrency"`
	Amount         decimal.Decimal `json:"amount"`       // magnitude taken from the source drawer
	Rate           decimal.Decimal `json:"rate"`         // applied conversion rate
	ResultAmount   decimal.Decimal `json:"resultAmount"` // magnitude placed in the destination drawer
	Concept        string          `json:"concept"`
	Status         OperationStatus `json:"status"`
	// GroupID batches the exchange into an arqueo group; cleared on
	// cancellation so the exchange drops out of open groupings.
	GroupID *string `json:"groupID,omitempty"`
	AuditFields
}

// IsCancelled reports whether the exchange reached its terminal state.
func (e CurrencyExchange) IsCancelled() bool {
	return e.Status == StatusCancelled
}
