package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRequest defines the payload for creating a currency exchange.
// Currency fields accept ISO codes or internal names.
type CreateExchangeRequest struct {
	SourceCurrency string          `json:"sourceCurrency" binding:"required,currencycode"`
	DestCurrency   string          `json:"destCurrency" binding:"required,currencycode"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Rate           decimal.Decimal `json:"rate" binding:"required"`
	ResultAmount   decimal.Decimal `json:"resultAmount" binding:"required"`
	Concept        string          `json:"concept"`
}

// CancelOperationRequest carries the reason recorded on a cancellation. It
// is shared by every operation kind that supports the compensating-entry
// protocol.
type CancelOperationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ExchangeResponse defines the API shape of a currency exchange.
type ExchangeResponse struct {
	ExchangeID     string          `json:"exchangeID"`
	SourceCurrency string          `json:"sourceCurrency"`
	DestCurrency   string          `json:"destCurrency"`
	Amount         decimal.Decimal `json:"amount"`
	Rate           decimal.Decimal `json:"rate"`
	ResultAmount   decimal.Decimal `json:"resultAmount"`
	Concept        string          `json:"concept"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToExchangeResponse converts a domain.CurrencyExchange to its API shape.
func ToExchangeResponse(e *domain.CurrencyExchange) ExchangeResponse {
	return ExchangeResponse{
		ExchangeID:     e.ExchangeID,
		SourceCurrency: e.SourceCurrency.ISOCode(),
		DestCurrency:   e.DestCurrency.ISOCode(),
		Amount:         e.Amount,
		Rate:           e.Rate,
		ResultAmount:   e.ResultAmount,
		Concept:        e.Concept,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// CreateExchangeResponse returns the exchange and the two entries it wrote.
type CreateExchangeResponse struct {
	Exchange ExchangeResponse      `json:"exchange"`
	Entries  []LedgerEntryResponse `json:"entries"`
}

// CancelExchangeResponse returns the original and compensating entries so
// the caller can see the full four-entry family.
type CancelExchangeResponse struct {
	Exchange            ExchangeResponse      `json:"exchange"`
	OriginalEntries     []LedgerEntryResponse `json:"originalEntries"`
	CompensatingEntries []LedgerEntryResponse `json:"compensatingEntries"`
}

// ListExchangesParams holds pagination parameters for listing exchanges.
type ListExchangesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListExchangesResponse wraps a page of exchanges.
type ListExchangesResponse struct {
	Exchanges []ExchangeResponse `json:"exchanges"`
	NextToken *string            `json:"nextToken,omitempty"`
}
