package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	"github.com/cajacentral/caja_backend/internal/models"
	"github.com/cajacentral/caja_backend/internal/utils/mapping"
	"github.com/cajacentral/caja_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeColumns = `exchange_id, source_currency, dest_currency, amount, rate, result_amount, concept, status, group_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRepository implements the exchange ports against PostgreSQL.
type PgxExchangeRepository struct {
	BaseRepository
}

// NewExchangeRepository creates a repository for currency exchanges.
func NewExchangeRepository(pool *pgxpool.Pool) *PgxExchangeRepository {
	return &PgxExchangeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRepositoryFacade = (*PgxExchangeRepository)(nil)

// SaveExchangeWithEntries persists the exchange row and both ledger entries
// in one transaction.
func (r *PgxExchangeRepository) SaveExchangeWithEntries(ctx context.Context, exchange domain.CurrencyExchange, intents []domain.EntryIntent) ([]domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExchange(exchange)
	_, err = tx.Exec(ctx, `
		INSERT INTO cambios (`+exchangeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.ExchangeID, m.SourceCurrency, m.DestCurrency, m.Amount, m.Rate,
		m.ResultAmount, m.Concept, m.Status, m.GroupID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert exchange "+exchange.ExchangeID, err)
	}

	entries, err := appendEntriesInTx(ctx, tx, intents, exchange.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// CancelExchangeWithEntries flips the exchange to cancelled and appends the
// compensating entries in one transaction.
func (r *PgxExchangeRepository) CancelExchangeWithEntries(ctx context.Context, exchange domain.CurrencyExchange, intents []domain.EntryIntent) ([]domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExchange(exchange)
	tag, err := tx.Exec(ctx, `
		UPDATE cambios
		SET status = $1, concept = $2, group_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE exchange_id = $6 AND status != $1;
	`,
		m.Status, m.Concept, m.GroupID, m.LastUpdatedAt, m.LastUpdatedBy, m.ExchangeID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel exchange "+exchange.ExchangeID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewAppError(409, "exchange "+exchange.ExchangeID+" already cancelled", apperrors.ErrConflict)
	}

	entries, err := appendEntriesInTx(ctx, tx, intents, exchange.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindExchangeByID retrieves an exchange by its identifier.
func (r *PgxExchangeRepository) FindExchangeByID(ctx context.Context, exchangeID string) (*domain.CurrencyExchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM cambios WHERE exchange_id = $1;`

	m, err := scanExchangeRow(r.Pool.QueryRow(ctx, query, exchangeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange "+exchangeID, err)
	}

	exchange := mapping.ToDomainExchange(m)
	return &exchange, nil
}

// ListExchanges retrieves a page of exchanges, newest first.
func (r *PgxExchangeRepository) ListExchanges(ctx context.Context, limit int, nextToken *string) ([]domain.CurrencyExchange, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + exchangeColumns + ` FROM cambios`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, createdAt, id)
		query += " WHERE (created_at, exchange_id) < ($1, $2)"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, exchange_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query exchanges", err)
	}
	defer rows.Close()

	exchanges := []domain.CurrencyExchange{}
	for rows.Next() {
		m, scanErr := scanExchangeRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan exchange row", scanErr)
		}
		exchanges = append(exchanges, mapping.ToDomainExchange(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating exchange rows", err)
	}

	var nextTokenVal *string
	if len(exchanges) > limit {
		exchanges = exchanges[:limit]
		last := exchanges[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExchangeID)
		nextTokenVal = &token
	}

	return exchanges, nextTokenVal, nil
}

func scanExchangeRow(row rowScanner) (models.CurrencyExchange, error) {
	var m models.CurrencyExchange
	err := row.Scan(
		&m.ExchangeID,
		&m.SourceCurrency,
		&m.DestCurrency,
		&m.Amount,
		&m.Rate,
		&m.ResultAmount,
		&m.Concept,
		&m.Status,
		&m.GroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
