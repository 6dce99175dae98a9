package domain

import "github.com/shopspring/decimal"

// BankDeposit records cash leaving the caja mayor for a bank account.
type BankDeposit struct {
	DepositID     string          `json:"depositID"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	ReceiptNumber string          `json:"receiptNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Concept       string          `json:"concept"`
	Status        OperationStatus `json:"status"`
	AuditFields
}

// IsCancelled reports whether the deposit reached its terminal state.
func (d BankDeposit) IsCancelled() bool {
	return d.Status == StatusCancelled
}
