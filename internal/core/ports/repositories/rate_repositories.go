package repositories

import (
	"context"
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
)

// RateRepositoryFacade reads exchange-rate snapshots. Snapshots are written
// by an external feed; the core never creates or mutates them.
type RateRepositoryFacade interface {
	// FindLatestOnDay retrieves the most recent snapshot whose effective
	// time falls on the same calendar day as at.
	FindLatestOnDay(ctx context.Context, at time.Time) (*domain.ExchangeRateSnapshot, error)

	// FindLatestBefore retrieves the most recent snapshot strictly before t.
	FindLatestBefore(ctx context.Context, t time.Time) (*domain.ExchangeRateSnapshot, error)

	// FindCurrent retrieves the snapshot flagged as current.
	FindCurrent(ctx context.Context) (*domain.ExchangeRateSnapshot, error)

	// FindLatest retrieves the most recent snapshot regardless of date.
	FindLatest(ctx context.Context) (*domain.ExchangeRateSnapshot, error)
}

// PharmacyRepositoryFacade persists the movimientos farmacia shadow ledger.
type PharmacyRepositoryFacade interface {
	// ListEntries retrieves a paginated list of shadow entries, newest first.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.PharmacyEntry, *string, error)

	// FindEntriesForAggregation retrieves every shadow entry in the window,
	// ordered by entry ID ascending.
	FindEntriesForAggregation(ctx context.Context, from, to *time.Time) ([]domain.PharmacyEntry, error)

	// FindEntriesByExpenseID retrieves the mirror rows for an expense.
	FindEntriesByExpenseID(ctx context.Context, expenseID string) ([]domain.PharmacyEntry, error)
}
