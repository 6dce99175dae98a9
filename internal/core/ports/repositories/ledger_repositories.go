package repositories

import (
	"context"

	"github.com/cajacentral/caja_backend/internal/core/domain"
)

// LedgerReader defines read operations over the caja mayor ledger.
type LedgerReader interface {
	// FindLastEntry retrieves the highest-id entry for a currency, or
	// apperrors.ErrNotFound when the currency has no entries yet.
	FindLastEntry(ctx context.Context, currency domain.Currency) (*domain.LedgerEntry, error)

	// FindEntriesByOperation retrieves all entries whose operation ID and
	// kind match, ordered by entry ID ascending. Compensating entries carry
	// a derived operation ID and therefore never match an original lookup.
	FindEntriesByOperation(ctx context.Context, operationID string, kind domain.EntryKind) ([]domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries matching the filter,
	// newest first, using token-based pagination.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindEntriesForAggregation retrieves every entry matching the filter,
	// ordered by entry ID ascending. Used by the cross-currency aggregator.
	FindEntriesForAggregation(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines the one write operation the ledger supports outside
// an orchestrator: a standalone append in its own atomic unit.
type LedgerWriter interface {
	// AppendEntry resolves the intent against the currency's tail balance
	// and persists the resulting entry. The read-compute-insert sequence is
	// serialized per currency by the implementation.
	AppendEntry(ctx context.Context, intent domain.EntryIntent) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
