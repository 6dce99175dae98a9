package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the API shape of one caja mayor movement.
// Currency is reported as the ISO code at the boundary.
type LedgerEntryResponse struct {
	EntryID       int64           `json:"entryID"`
	Kind          string          `json:"kind"`
	OperationID   string          `json:"operationID"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	IsCredit      bool            `json:"isCredit"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Concept       string          `json:"concept"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its API shape.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		Kind:          string(e.Kind),
		OperationID:   e.OperationID,
		CurrencyCode:  e.Currency.ISOCode(),
		Amount:        e.Amount,
		IsCredit:      e.IsCredit,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Concept:       e.Concept,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(e)
	}
	return responses
}

// ListMovementsParams holds the query parameters for listing movements.
type ListMovementsParams struct {
	CurrencyCode string     `form:"currency"`
	Kind         string     `form:"kind"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	Limit        int        `form:"limit"`
	NextToken    *string    `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []LedgerEntryResponse `json:"movements"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// AppendAdjustmentRequest defines a manual ledger adjustment.
type AppendAdjustmentRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	IsCredit     bool            `json:"isCredit"`
	Concept      string          `json:"concept" binding:"required"`
}
