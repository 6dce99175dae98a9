package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the payload for creating an expense.
type CreateExpenseRequest struct {
	Category             string          `json:"category" binding:"required"`
	Concept              string          `json:"concept" binding:"required"`
	Amount               decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode         string          `json:"currencyCode" binding:"required,currencycode"`
	DrawsFromCentralCash bool            `json:"drawsFromCentralCash"`
}

// UpdateExpenseRequest defines the updatable fields of an expense.
// Nil fields are left unchanged.
type UpdateExpenseRequest struct {
	Category     *string          `json:"category"`
	Concept      *string          `json:"concept"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,currencycode"`
}

// ExpenseResponse defines the API shape of an expense.
type ExpenseResponse struct {
	ExpenseID            string          `json:"expenseID"`
	Category             string          `json:"category"`
	Concept              string          `json:"concept"`
	Amount               decimal.Decimal `json:"amount"`
	CurrencyCode         string          `json:"currencyCode"`
	DrawsFromCentralCash bool            `json:"drawsFromCentralCash"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to its API shape.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:            e.ExpenseID,
		Category:             e.Category,
		Concept:              e.Concept,
		Amount:               e.Amount,
		CurrencyCode:         e.Currency.ISOCode(),
		DrawsFromCentralCash: e.DrawsFromCentralCash,
		CreatedAt:            e.CreatedAt,
		CreatedBy:            e.CreatedBy,
	}
}

// ListExpensesParams holds pagination parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// DeleteExpenseResponse reports which deletion path ran and the
// compensating entry when the central-cash path was taken.
type DeleteExpenseResponse struct {
	ExpenseID         string               `json:"expenseID"`
	CentralCashPath   bool                 `json:"centralCashPath"`
	CompensatingEntry *LedgerEntryResponse `json:"compensatingEntry,omitempty"`
}
