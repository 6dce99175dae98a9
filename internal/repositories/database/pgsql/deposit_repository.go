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

const depositColumns = `deposit_id, bank_name, account_number, receipt_number, amount, currency, concept, status, created_at, created_by, last_updated_at, last_updated_by`

// PgxDepositRepository implements the bank deposit ports against PostgreSQL.
type PgxDepositRepository struct {
	BaseRepository
}

// NewDepositRepository creates a repository for bank deposits.
func NewDepositRepository(pool *pgxpool.Pool) *PgxDepositRepository {
	return &PgxDepositRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

// SaveDepositWithEntry persists the deposit and its ledger debit together.
func (r *PgxDepositRepository) SaveDepositWithEntry(ctx context.Context, deposit domain.BankDeposit, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDeposit(deposit)
	_, err = tx.Exec(ctx, `
		INSERT INTO depositos (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.DepositID, m.BankName, m.AccountNumber, m.ReceiptNumber, m.Amount,
		m.Currency, m.Concept, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert deposit "+deposit.DepositID, err)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, deposit.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CancelDepositWithEntry flips the deposit to cancelled and appends its
// compensating credit in one unit.
func (r *PgxDepositRepository) CancelDepositWithEntry(ctx context.Context, deposit domain.BankDeposit, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDeposit(deposit)
	tag, err := tx.Exec(ctx, `
		UPDATE depositos
		SET status = $1, concept = $2, last_updated_at = $3, last_updated_by = $4
		WHERE deposit_id = $5 AND status != $1;
	`,
		m.Status, m.Concept, m.LastUpdatedAt, m.LastUpdatedBy, m.DepositID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel deposit "+deposit.DepositID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewAppError(409, "deposit "+deposit.DepositID+" already cancelled", apperrors.ErrConflict)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, deposit.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindDepositByID retrieves a deposit by its identifier.
func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM depositos WHERE deposit_id = $1;`

	m, err := scanDepositRow(r.Pool.QueryRow(ctx, query, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find deposit "+depositID, err)
	}

	deposit := mapping.ToDomainDeposit(m)
	return &deposit, nil
}

// ListDeposits retrieves a page of deposits, newest first.
func (r *PgxDepositRepository) ListDeposits(ctx context.Context, limit int, nextToken *string) ([]domain.BankDeposit, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + depositColumns + ` FROM depositos`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, createdAt, id)
		query += " WHERE (created_at, deposit_id) < ($1, $2)"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, deposit_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query deposits", err)
	}
	defer rows.Close()

	deposits := []domain.BankDeposit{}
	for rows.Next() {
		m, scanErr := scanDepositRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan deposit row", scanErr)
		}
		deposits = append(deposits, mapping.ToDomainDeposit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating deposit rows", err)
	}

	var nextTokenVal *string
	if len(deposits) > limit {
		deposits = deposits[:limit]
		last := deposits[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DepositID)
		nextTokenVal = &token
	}

	return deposits, nextTokenVal, nil
}

func scanDepositRow(row rowScanner) (models.BankDeposit, error) {
	var m models.BankDeposit
	err := row.Scan(
		&m.DepositID,
		&m.BankName,
		&m.AccountNumber,
		&m.ReceiptNumber,
		&m.Amount,
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
