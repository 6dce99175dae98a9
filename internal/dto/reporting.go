package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyBalance is the latest running balance of one drawer.
type CurrencyBalance struct {
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Formatted    string          `json:"formatted"`
}

// BalancesResponse is the per-drawer view plus the consolidated guaraní
// total computed with historical rates.
type BalancesResponse struct {
	Balances       []CurrencyBalance `json:"balances"`
	TotalGuaranies decimal.Decimal   `json:"totalGuaranies"`
}

// AggregateParams narrows an aggregation request.
type AggregateParams struct {
	CurrencyCode string     `form:"currency"`
	Kind         string     `form:"kind"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
}

// AggregateResponse is a single consolidated figure in guaraníes.
type AggregateResponse struct {
	TotalGuaranies decimal.Decimal `json:"totalGuaranies"`
}

// PharmacyEntryResponse defines the API shape of one shadow-ledger row.
type PharmacyEntryResponse struct {
	EntryID      int64           `json:"entryID"`
	Concept      string          `json:"concept"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExpenseID    *string         `json:"expenseID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToPharmacyEntryResponse converts a domain.PharmacyEntry to its API shape.
func ToPharmacyEntryResponse(e domain.PharmacyEntry) PharmacyEntryResponse {
	return PharmacyEntryResponse{
		EntryID:      e.EntryID,
		Concept:      e.Concept,
		Amount:       e.Amount,
		CurrencyCode: e.Currency.ISOCode(),
		ExpenseID:    e.ExpenseID,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ListPharmacyEntriesResponse wraps a page of shadow-ledger rows. The
// consolidated guaraní total is carried on the first page only; continuation
// pages omit it.
type ListPharmacyEntriesResponse struct {
	Entries        []PharmacyEntryResponse `json:"entries"`
	TotalGuaranies *decimal.Decimal        `json:"totalGuaranies,omitempty"`
	NextToken      *string                 `json:"nextToken,omitempty"`
}
