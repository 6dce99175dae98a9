package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositRequest defines the payload for registering a bank deposit.
type CreateDepositRequest struct {
	BankName      string          `json:"bankName" binding:"required"`
	AccountNumber string          `json:"accountNumber" binding:"required"`
	ReceiptNumber string          `json:"receiptNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currencycode"`
	Concept       string          `json:"concept"`
}

// DepositResponse defines the API shape of a bank deposit.
type DepositResponse struct {
	DepositID     string          `json:"depositID"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	ReceiptNumber string          `json:"receiptNumber"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Concept       string          `json:"concept"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToDepositResponse converts a domain.BankDeposit to its API shape.
func ToDepositResponse(d *domain.BankDeposit) DepositResponse {
	return DepositResponse{
		DepositID:     d.DepositID,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		ReceiptNumber: d.ReceiptNumber,
		Amount:        d.Amount,
		CurrencyCode:  d.Currency.ISOCode(),
		Concept:       d.Concept,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ListDepositsResponse wraps a page of deposits.
type ListDepositsResponse struct {
	Deposits  []DepositResponse `json:"deposits"`
	NextToken *string           `json:"nextToken,omitempty"`
}
