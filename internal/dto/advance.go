package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdvanceRequest defines the payload for handing out a cash advance.
type CreateAdvanceRequest struct {
	PersonName   string          `json:"personName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Concept      string          `json:"concept"`
}

// RegisterReturnRequest defines a full or partial return against an advance.
type RegisterReturnRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AdvanceResponse defines the API shape of a cash advance.
type AdvanceResponse struct {
	AdvanceID      string          `json:"advanceID"`
	PersonName     string          `json:"personName"`
	Amount         decimal.Decimal `json:"amount"`
	ReturnedAmount decimal.Decimal `json:"returnedAmount"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	CurrencyCode   string          `json:"currencyCode"`
	Concept        string          `json:"concept"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToAdvanceResponse converts a domain.CashAdvance to its API shape.
func ToAdvanceResponse(a *domain.CashAdvance) AdvanceResponse {
	return AdvanceResponse{
		AdvanceID:      a.AdvanceID,
		PersonName:     a.PersonName,
		Amount:         a.Amount,
		ReturnedAmount: a.ReturnedAmount,
		Outstanding:    a.Outstanding(),
		CurrencyCode:   a.Currency.ISOCode(),
		Concept:        a.Concept,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
}

// ListAdvancesResponse wraps a page of advances.
type ListAdvancesResponse struct {
	Advances  []AdvanceResponse `json:"advances"`
	NextToken *string           `json:"nextToken,omitempty"`
}
