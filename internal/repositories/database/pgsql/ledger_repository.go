package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	"github.com/cajacentral/caja_backend/internal/models"
	"github.com/cajacentral/caja_backend/internal/utils/mapping"
	"github.com/cajacentral/caja_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ledgerLockNamespace is the advisory-lock classid shared by all
// per-currency ledger locks.
const ledgerLockNamespace = 7201

const ledgerColumns = `id, kind, operation_id, currency, amount, is_credit, balance_before, balance_after, concept, created_at, created_by`

// PgxLedgerRepository implements the ledger ports against PostgreSQL.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a repository for the caja mayor ledger.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements the ledger facade.
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// appendEntryInTx is the ledger append engine. It performs the
// read-tail -> compute-balances -> insert sequence inside the caller's
// transaction, serialized per currency: a transaction-scoped advisory lock
// on (ledgerLockNamespace, hash(currency)) is taken before reading the tail
// row, so two operations touching the same currency cannot both read the
// same "last" balance. The lock also covers the first entry of a currency,
// which a row lock on the (nonexistent) tail could not.
//
// It never begins or commits; any error rolls the whole enclosing unit back.
func appendEntryInTx(ctx context.Context, tx pgx.Tx, intent domain.EntryIntent, at time.Time) (domain.LedgerEntry, error) {
	if err := intent.Validate(); err != nil {
		return domain.LedgerEntry{}, apperrors.NewValidationError(err.Error())
	}

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, hashtext($2))`,
		ledgerLockNamespace, string(intent.Currency),
	); err != nil {
		return domain.LedgerEntry{}, apperrors.NewAppError(500, "failed to acquire ledger lock for "+string(intent.Currency), err)
	}

	var balanceBefore decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT balance_after FROM caja_mayor_movimientos WHERE currency = $1 ORDER BY id DESC LIMIT 1`,
		string(intent.Currency),
	).Scan(&balanceBefore)
	if errors.Is(err, pgx.ErrNoRows) {
		balanceBefore = decimal.Zero
	} else if err != nil {
		return domain.LedgerEntry{}, apperrors.NewAppError(500, "failed to read ledger tail for "+string(intent.Currency), err)
	}

	entry := intent.Resolve(balanceBefore, at)

	err = tx.QueryRow(ctx, `
		INSERT INTO caja_mayor_movimientos
			(kind, operation_id, currency, amount, is_credit, balance_before, balance_after, concept, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`,
		string(entry.Kind),
		entry.OperationID,
		string(entry.Currency),
		entry.Amount,
		entry.IsCredit,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Concept,
		entry.CreatedAt,
		entry.CreatedBy,
	).Scan(&entry.EntryID)
	if err != nil {
		return domain.LedgerEntry{}, apperrors.NewAppError(500, "failed to insert ledger entry for operation "+entry.OperationID, err)
	}

	return entry, nil
}

// appendEntriesInTx appends the intents in order, all within tx.
func appendEntriesInTx(ctx context.Context, tx pgx.Tx, intents []domain.EntryIntent, at time.Time) ([]domain.LedgerEntry, error) {
	entries := make([]domain.LedgerEntry, 0, len(intents))
	for _, intent := range intents {
		entry, err := appendEntryInTx(ctx, tx, intent, at)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AppendEntry performs a standalone append in its own transaction.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entry, err := appendEntryInTx(ctx, tx, intent, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindLastEntry retrieves the highest-id entry for a currency.
func (r *PgxLedgerRepository) FindLastEntry(ctx context.Context, currency domain.Currency) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM caja_mayor_movimientos WHERE currency = $1 ORDER BY id DESC LIMIT 1;`

	m, err := scanLedgerRow(r.Pool.QueryRow(ctx, query, string(currency)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find last ledger entry for "+string(currency), err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindEntriesByOperation retrieves all entries for an operation ID and kind,
// ordered by id ascending. Compensating entries carry a derived operation ID
// and never match here.
func (r *PgxLedgerRepository) FindEntriesByOperation(ctx context.Context, operationID string, kind domain.EntryKind) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM caja_mayor_movimientos WHERE operation_id = $1 AND kind = $2 ORDER BY id;`

	rows, err := r.Pool.Query(ctx, query, operationID, string(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for operation "+operationID, err)
	}
	defer rows.Close()

	return collectLedgerRows(rows, "operation "+operationID)
}

// ListEntries retrieves a filtered page of entries, newest first, using an
// id-based cursor.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + ledgerColumns + ` FROM caja_mayor_movimientos`
	where, args := buildEntryFilter(filter, nil)

	if nextToken != nil && *nextToken != "" {
		lastID, decodeErr := pagination.DecodeIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastID)
		where = append(where, "id < $"+strconv.Itoa(len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	args = append(args, fetchLimit)
	query += " ORDER BY id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries, err := collectLedgerRows(rows, "listing")
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeIDToken(entries[limit-1].EntryID)
		nextTokenVal = &token
	}

	return entries, nextTokenVal, nil
}

// FindEntriesForAggregation retrieves every matching entry, oldest first.
func (r *PgxLedgerRepository) FindEntriesForAggregation(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM caja_mayor_movimientos`
	where, args := buildEntryFilter(filter, nil)
	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	query += " ORDER BY id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for aggregation", err)
	}
	defer rows.Close()

	return collectLedgerRows(rows, "aggregation")
}

// buildEntryFilter translates an EntryFilter into WHERE fragments and args,
// continuing the given arg list.
func buildEntryFilter(filter domain.EntryFilter, args []interface{}) ([]string, []interface{}) {
	var where []string

	if filter.Currency != nil {
		args = append(args, string(*filter.Currency))
		where = append(where, "currency = $"+strconv.Itoa(len(args)))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, len(filter.Kinds))
		for i, k := range filter.Kinds {
			kinds[i] = string(k)
		}
		args = append(args, kinds)
		where = append(where, "kind = ANY($"+strconv.Itoa(len(args))+")")
	}
	if filter.OperationID != nil {
		args = append(args, *filter.OperationID)
		where = append(where, "operation_id = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, "created_at < $"+strconv.Itoa(len(args)))
	}

	return where, args
}

func joinAnd(fragments []string) string {
	out := fragments[0]
	for _, f := range fragments[1:] {
		out += " AND " + f
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedgerRow(row rowScanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.Kind,
		&m.OperationID,
		&m.Currency,
		&m.Amount,
		&m.IsCredit,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Concept,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

func collectLedgerRows(rows pgx.Rows, scope string) ([]domain.LedgerEntry, error) {
	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row ("+scope+")", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows ("+scope+")", err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}
