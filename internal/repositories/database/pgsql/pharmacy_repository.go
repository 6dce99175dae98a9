package pgsql

import (
	"context"
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
)

const pharmacyColumns = `id, concept, amount, currency, expense_id, created_at, created_by`

// PgxPharmacyRepository reads the movimientos farmacia shadow ledger.
// Writes happen inside the expense repository's transactions, never here.
type PgxPharmacyRepository struct {
	BaseRepository
}

// NewPharmacyRepository creates a repository for the shadow ledger.
func NewPharmacyRepository(pool *pgxpool.Pool) *PgxPharmacyRepository {
	return &PgxPharmacyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PharmacyRepositoryFacade = (*PgxPharmacyRepository)(nil)

// ListEntries retrieves a page of shadow entries, newest first.
func (r *PgxPharmacyRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.PharmacyEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + pharmacyColumns + ` FROM movimientos_farmacia`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastID, decodeErr := pagination.DecodeIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastID)
		query += " WHERE id < $1"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query pharmacy entries", err)
	}
	defer rows.Close()

	entries, err := collectPharmacyRows(rows)
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

// FindEntriesForAggregation retrieves every shadow entry in the window,
// oldest first.
func (r *PgxPharmacyRepository) FindEntriesForAggregation(ctx context.Context, from, to *time.Time) ([]domain.PharmacyEntry, error) {
	query := `SELECT ` + pharmacyColumns + ` FROM movimientos_farmacia`
	args := []interface{}{}
	where := []string{}

	if from != nil {
		args = append(args, *from)
		where = append(where, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		where = append(where, "created_at < $"+strconv.Itoa(len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	query += " ORDER BY id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pharmacy entries for aggregation", err)
	}
	defer rows.Close()

	return collectPharmacyRows(rows)
}

// FindEntriesByExpenseID retrieves the mirror rows for an expense.
func (r *PgxPharmacyRepository) FindEntriesByExpenseID(ctx context.Context, expenseID string) ([]domain.PharmacyEntry, error) {
	query := `SELECT ` + pharmacyColumns + ` FROM movimientos_farmacia WHERE expense_id = $1 ORDER BY id;`

	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pharmacy entries for expense "+expenseID, err)
	}
	defer rows.Close()

	return collectPharmacyRows(rows)
}

func collectPharmacyRows(rows pgx.Rows) ([]domain.PharmacyEntry, error) {
	entries := []models.PharmacyEntry{}
	for rows.Next() {
		var m models.PharmacyEntry
		err := rows.Scan(
			&m.EntryID,
			&m.Concept,
			&m.Amount,
			&m.Currency,
			&m.ExpenseID,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pharmacy entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pharmacy entry rows", err)
	}
	return mapping.ToDomainPharmacyEntrySlice(entries), nil
}
