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
	"github.com/shopspring/decimal"
)

const advanceColumns = `advance_id, person_name, amount, returned_amount, currency, concept, status, created_at, created_by, last_updated_at, last_updated_by`

// PgxAdvanceRepository implements the cash advance (vale) ports against
// PostgreSQL.
type PgxAdvanceRepository struct {
	BaseRepository
}

// NewAdvanceRepository creates a repository for cash advances.
func NewAdvanceRepository(pool *pgxpool.Pool) *PgxAdvanceRepository {
	return &PgxAdvanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdvanceRepositoryFacade = (*PgxAdvanceRepository)(nil)

// SaveAdvanceWithEntry persists the advance and its ledger debit together.
func (r *PgxAdvanceRepository) SaveAdvanceWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAdvance(advance)
	_, err = tx.Exec(ctx, `
		INSERT INTO vales (`+advanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.AdvanceID, m.PersonName, m.Amount, m.ReturnedAmount, m.Currency,
		m.Concept, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert advance "+advance.AdvanceID, err)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, advance.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// findAdvanceForUpdate reads the vale row under a row lock. Must be called
// within a transaction; concurrent returns and cancellations of the same
// advance serialize on this lock.
func findAdvanceForUpdate(ctx context.Context, tx pgx.Tx, advanceID string) (models.CashAdvance, error) {
	query := `SELECT ` + advanceColumns + ` FROM vales WHERE advance_id = $1 FOR UPDATE;`

	m, err := scanAdvanceRow(tx.QueryRow(ctx, query, advanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CashAdvance{}, apperrors.ErrNotFound
		}
		return models.CashAdvance{}, apperrors.NewAppError(500, "failed to lock advance "+advanceID, err)
	}
	return m, nil
}

// checkReturnAllowed re-validates a return against the locked row state. The
// caller's earlier read may be stale; the locked row is authoritative.
func checkReturnAllowed(locked models.CashAdvance, returnAmount decimal.Decimal) error {
	if locked.Status == string(domain.StatusCancelled) {
		return apperrors.NewAppError(409, "advance "+locked.AdvanceID+" is cancelled", apperrors.ErrConflict)
	}
	if locked.ReturnedAmount.Add(returnAmount).GreaterThan(locked.Amount) {
		outstanding := locked.Amount.Sub(locked.ReturnedAmount)
		return apperrors.NewAppError(409,
			"return amount "+returnAmount.String()+" exceeds outstanding "+outstanding.String()+
				" for advance "+locked.AdvanceID, apperrors.ErrConflict)
	}
	return nil
}

// checkCancelAllowed re-validates cancellation against the locked row state.
func checkCancelAllowed(locked models.CashAdvance) error {
	if locked.Status == string(domain.StatusCancelled) {
		return apperrors.NewAppError(409, "advance "+locked.AdvanceID+" already cancelled", apperrors.ErrConflict)
	}
	if locked.ReturnedAmount.IsPositive() {
		return apperrors.NewAppError(409,
			"advance "+locked.AdvanceID+" has registered returns and cannot be cancelled", apperrors.ErrConflict)
	}
	return nil
}

// RegisterReturnWithEntry adds the return to the returned amount and appends
// the return's credit entry in one unit. The row is locked and the guards
// re-checked inside the transaction, so the returned total never exceeds the
// amount handed out even under concurrent returns.
func (r *PgxAdvanceRepository) RegisterReturnWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := findAdvanceForUpdate(ctx, tx, advance.AdvanceID)
	if err != nil {
		return nil, err
	}
	if err := checkReturnAllowed(locked, intent.Amount); err != nil {
		return nil, err
	}

	m := mapping.ToModelAdvance(advance)
	newReturned := locked.ReturnedAmount.Add(intent.Amount)
	_, err = tx.Exec(ctx, `
		UPDATE vales
		SET returned_amount = $1, last_updated_at = $2, last_updated_by = $3
		WHERE advance_id = $4;
	`,
		newReturned, m.LastUpdatedAt, m.LastUpdatedBy, m.AdvanceID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to register return for advance "+advance.AdvanceID, err)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, advance.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CancelAdvanceWithEntry flips the advance to cancelled and appends its
// compensating credit in one unit. The row is locked and the guards
// re-checked inside the transaction, so a cancel racing a return or a second
// cancel loses cleanly with a conflict.
func (r *PgxAdvanceRepository) CancelAdvanceWithEntry(ctx context.Context, advance domain.CashAdvance, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := findAdvanceForUpdate(ctx, tx, advance.AdvanceID)
	if err != nil {
		return nil, err
	}
	if err := checkCancelAllowed(locked); err != nil {
		return nil, err
	}

	m := mapping.ToModelAdvance(advance)
	_, err = tx.Exec(ctx, `
		UPDATE vales
		SET status = $1, concept = $2, last_updated_at = $3, last_updated_by = $4
		WHERE advance_id = $5;
	`,
		m.Status, m.Concept, m.LastUpdatedAt, m.LastUpdatedBy, m.AdvanceID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel advance "+advance.AdvanceID, err)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, advance.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindAdvanceByID retrieves an advance by its identifier.
func (r *PgxAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.CashAdvance, error) {
	query := `SELECT ` + advanceColumns + ` FROM vales WHERE advance_id = $1;`

	m, err := scanAdvanceRow(r.Pool.QueryRow(ctx, query, advanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find advance "+advanceID, err)
	}

	advance := mapping.ToDomainAdvance(m)
	return &advance, nil
}

// ListAdvances retrieves a page of advances, newest first.
func (r *PgxAdvanceRepository) ListAdvances(ctx context.Context, limit int, nextToken *string) ([]domain.CashAdvance, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + advanceColumns + ` FROM vales`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, createdAt, id)
		query += " WHERE (created_at, advance_id) < ($1, $2)"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, advance_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query advances", err)
	}
	defer rows.Close()

	advances := []domain.CashAdvance{}
	for rows.Next() {
		m, scanErr := scanAdvanceRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan advance row", scanErr)
		}
		advances = append(advances, mapping.ToDomainAdvance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating advance rows", err)
	}

	var nextTokenVal *string
	if len(advances) > limit {
		advances = advances[:limit]
		last := advances[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AdvanceID)
		nextTokenVal = &token
	}

	return advances, nextTokenVal, nil
}

func scanAdvanceRow(row rowScanner) (models.CashAdvance, error) {
	var m models.CashAdvance
	err := row.Scan(
		&m.AdvanceID,
		&m.PersonName,
		&m.Amount,
		&m.ReturnedAmount,
		&m.Currency,
		&m.Concept,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
