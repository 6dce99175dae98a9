package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyExchange is the row shape of cambios.
type CurrencyExchange struct {
	ExchangeID     string          `json:"exchangeID"`
	SourceCurrency string          `json:"sourceCurrency"`
	DestCurrency   string          `json:"destCurrency"`
	Amount         decimal.Decimal `json:"amount"`
	Rate           decimal.Decimal `json:"rate"`
	ResultAmount   decimal.Decimal `json:"resultAmount"`
	Concept        string          `json:"concept"`
	Status         string          `json:"status"`
	GroupID        *string         `json:"groupID"`
	AuditFields
}

// Expense is the row shape of gastos.
type Expense struct {
	ExpenseID            string          `json:"expenseID"`
	Category             string          `json:"category"`
	Concept              string          `json:"concept"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	DrawsFromCentralCash bool            `json:"drawsFromCentralCash"`
	AuditFields
}

// BankDeposit is the row shape of depositos.
type BankDeposit struct {
	DepositID     string          `json:"depositID"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	ReceiptNumber string          `json:"receiptNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Concept       string          `json:"concept"`
	Status        string          `json:"status"`
	AuditFields
}

// CashAdvance is the row shape of vales.
type CashAdvance struct {
	AdvanceID      string          `json:"advanceID"`
	PersonName     string          `json:"personName"`
	Amount         decimal.Decimal `json:"amount"`
	ReturnedAmount decimal.Decimal `json:"returnedAmount"`
	Currency       string          `json:"currency"`
	Concept        string          `json:"concept"`
	Status         string          `json:"status"`
	AuditFields
}

// ServicePayment is the row shape of pagos_servicios.
type ServicePayment struct {
	PaymentID     string          `json:"paymentID"`
	Provider      string          `json:"provider"`
	VoucherNumber string          `json:"voucherNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Concept       string          `json:"concept"`
	Status        string          `json:"status"`
	AuditFields
}

// ExchangeRateSnapshot is the row shape of cotizaciones.
type ExchangeRateSnapshot struct {
	SnapshotID  string          `json:"snapshotID"`
	EffectiveAt time.Time       `json:"effectiveAt"`
	RateDolar   decimal.Decimal `json:"rateDolar"`
	RateReal    decimal.Decimal `json:"rateReal"`
	IsCurrent   bool            `json:"isCurrent"`
	CreatedAt   time.Time       `json:"createdAt"`
}
