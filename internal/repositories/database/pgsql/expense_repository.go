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
)

const expenseColumns = `expense_id, category, concept, amount, currency, draws_from_central_cash, created_at, created_by, last_updated_at, last_updated_by`

// PgxExpenseRepository implements the expense ports against PostgreSQL.
// Writes that touch the caja mayor ledger or the pharmacy mirror run in a
// single transaction so the three tables never disagree.
type PgxExpenseRepository struct {
	BaseRepository
}

// NewExpenseRepository creates a repository for expenses.
func NewExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense persists the expense row plus, when present, its central
// ledger debit and its pharmacy mirror row.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, intent *domain.EntryIntent, mirror *domain.PharmacyEntry) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExpense(expense)
	_, err = tx.Exec(ctx, `
		INSERT INTO gastos (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.ExpenseID, m.Category, m.Concept, m.Amount, m.Currency,
		m.DrawsFromCentralCash, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert expense "+expense.ExpenseID, err)
	}

	var saved *domain.LedgerEntry
	if intent != nil {
		entry, appendErr := appendEntryInTx(ctx, tx, *intent, expense.CreatedAt)
		if appendErr != nil {
			return nil, appendErr
		}
		saved = &entry
	}

	if mirror != nil {
		if err := insertPharmacyEntryInTx(ctx, tx, *mirror); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteExpense removes an expense row that never touched the ledger.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM gastos WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpenseWithReversal removes the expense and its pharmacy mirror rows
// and appends the compensating central-ledger credit, all in one unit. The
// mirror rows vanish while the compensating entry stays, which is the
// intended asymmetry between the two ledgers.
func (r *PgxExpenseRepository) DeleteExpenseWithReversal(ctx context.Context, expenseID string, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM movimientos_farmacia WHERE expense_id = $1;`, expenseID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete pharmacy mirror for expense "+expenseID, err)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM gastos WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateExpenseWithCorrection updates the expense row, appends the
// correction pair, and replaces the pharmacy mirror rows in one unit.
func (r *PgxExpenseRepository) UpdateExpenseWithCorrection(ctx context.Context, expense domain.Expense, intents []domain.EntryIntent, mirror *domain.PharmacyEntry) ([]domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := updateExpenseInTx(ctx, tx, expense); err != nil {
		return nil, err
	}

	entries, err := appendEntriesInTx(ctx, tx, intents, expense.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM movimientos_farmacia WHERE expense_id = $1;`, expense.ExpenseID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete pharmacy mirror for expense "+expense.ExpenseID, err)
	}
	if mirror != nil {
		if err := insertPharmacyEntryInTx(ctx, tx, *mirror); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateExpense updates an expense row that never touched the ledger.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateExpenseInTx(ctx, tx, expense); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func updateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	tag, err := tx.Exec(ctx, `
		UPDATE gastos
		SET category = $1, concept = $2, amount = $3, currency = $4, draws_from_central_cash = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $8;
	`,
		m.Category, m.Concept, m.Amount, m.Currency, m.DrawsFromCentralCash,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ExpenseID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindExpenseByID retrieves an expense by its identifier.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM gastos WHERE expense_id = $1;`

	m, err := scanExpenseRow(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}

	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// ListExpenses retrieves a page of expenses, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + expenseColumns + ` FROM gastos`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, createdAt, id)
		query += " WHERE (created_at, expense_id) < ($1, $2)"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, expense_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, scanErr := scanExpenseRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan expense row", scanErr)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	var nextTokenVal *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		nextTokenVal = &token
	}

	return expenses, nextTokenVal, nil
}

// HasCentralLedgerEntry reports whether an original expense entry exists in
// the caja mayor ledger for this expense.
func (r *PgxExpenseRepository) HasCentralLedgerEntry(ctx context.Context, expenseID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM caja_mayor_movimientos WHERE operation_id = $1 AND kind = $2);`,
		expenseID, string(domain.KindExpense),
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check ledger entry for expense "+expenseID, err)
	}
	return exists, nil
}

func scanExpenseRow(row rowScanner) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Category,
		&m.Concept,
		&m.Amount,
		&m.Currency,
		&m.DrawsFromCentralCash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertPharmacyEntryInTx writes a pharmacy mirror row inside the caller's
// transaction. Shared with the pharmacy repository's own writes.
func insertPharmacyEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.PharmacyEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO movimientos_farmacia (concept, amount, currency, expense_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`,
		entry.Concept, entry.Amount, string(entry.Currency), entry.ExpenseID,
		entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert pharmacy entry", err)
	}
	return nil
}
