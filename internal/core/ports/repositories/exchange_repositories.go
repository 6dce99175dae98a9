package repositories

import (
	"context"

	"github.com/cajacentral/caja_backend/internal/core/domain"
)

// ExchangeReader defines read operations for currency exchange records.
type ExchangeReader interface {
	// FindExchangeByID retrieves an exchange by its unique identifier.
	FindExchangeByID(ctx context.Context, exchangeID string) (*domain.CurrencyExchange, error)

	// ListExchanges retrieves a paginated list of exchanges, newest first.
	ListExchanges(ctx context.Context, limit int, nextToken *string) ([]domain.CurrencyExchange, *string, error)
}

// ExchangeWriter defines write operations for currency exchange records.
// Both methods are single atomic units: the exchange row and every ledger
// entry commit together or not at all.
type ExchangeWriter interface {
	// SaveExchangeWithEntries persists the exchange and appends its two
	// ledger entries (debit source, credit destination), returning the
	// entries with their resolved balances.
	SaveExchangeWithEntries(ctx context.Context, exchange domain.CurrencyExchange, intents []domain.EntryIntent) ([]domain.LedgerEntry, error)

	// CancelExchangeWithEntries marks the exchange cancelled (status,
	// concept marker, cleared group) and appends the compensating entries.
	CancelExchangeWithEntries(ctx context.Context, exchange domain.CurrencyExchange, intents []domain.EntryIntent) ([]domain.LedgerEntry, error)
}

// ExchangeRepositoryFacade combines all exchange repository interfaces.
type ExchangeRepositoryFacade interface {
	ExchangeReader
	ExchangeWriter
}
