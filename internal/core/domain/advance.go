package domain

import "github.com/shopspring/decimal"

// CashAdvance is a vale: cash handed out against a later return. Returns
// may be partial; each one appends a credit entry. An advance can only be
// cancelled while nothing has been returned against it.
type CashAdvance struct {
	AdvanceID      string          `json:"advanceID"`
	PersonName     string          `json:"personName"`
	Amount         decimal.Decimal `json:"amount"`
	ReturnedAmount decimal.Decimal `json:"returnedAmount"`
	Currency       Currency        `json:"currency"`
	Concept        string          `json:"concept"`
	Status         OperationStatus `json:"status"`
	AuditFields
}

// Outstanding is the portion of the advance not yet returned.
func (a CashAdvance) Outstanding() decimal.Decimal {
	return a.Amount.Sub(a.ReturnedAmount)
}

// IsCancelled reports whether the advance reached its terminal state.
func (a CashAdvance) IsCancelled() bool {
	return a.Status == StatusCancelled
}
