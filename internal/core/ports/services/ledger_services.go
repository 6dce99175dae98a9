package services

import (
	"context"
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade exposes direct ledger reads and the one standalone write.
type LedgerSvcFacade interface {
	// AppendAdjustment appends a manual ADJUSTMENT entry in its own unit.
	AppendAdjustment(ctx context.Context, req dto.AppendAdjustmentRequest, actorID string) (*domain.LedgerEntry, error)

	// ListMovements retrieves a filtered, paginated view of the ledger.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)

	// VerifyContinuity re-checks the running-balance chain for a currency
	// and returns the first entry that breaks it, or nil when the chain
	// holds. A broken chain is surfaced, never repaired.
	VerifyContinuity(ctx context.Context, currency domain.Currency) (*domain.LedgerEntry, error)
}

// RateSvcFacade resolves exchange rates for arbitrary points in time.
type RateSvcFacade interface {
	// Resolve returns the rates in effect at the given moment, following
	// the documented fallback cascade. An empty snapshot set yields the
	// zero-rate default together with domain knowledge that it is one.
	Resolve(ctx context.Context, at time.Time) (domain.ExchangeRateSnapshot, error)

	// Current returns the snapshot flagged current, cache-assisted.
	Current(ctx context.Context) (domain.ExchangeRateSnapshot, error)
}

// ReportingSvcFacade aggregates multi-currency activity into guaraníes.
type ReportingSvcFacade interface {
	// TotalInGuaranies sums the matching entries, converting each foreign
	// entry at the rate in effect when the entry was written.
	TotalInGuaranies(ctx context.Context, filter domain.EntryFilter) (decimal.Decimal, error)

	// Balances reports each drawer's latest running balance plus the
	// consolidated guaraní total.
	Balances(ctx context.Context) (*dto.BalancesResponse, error)

	// ListPharmacyMovements pages through the shadow ledger and reports
	// the window's consolidated guaraní total.
	ListPharmacyMovements(ctx context.Context, limit int, nextToken *string) (*dto.ListPharmacyEntriesResponse, error)
}
