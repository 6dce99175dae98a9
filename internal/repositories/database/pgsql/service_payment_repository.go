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

const paymentColumns = `payment_id, provider, voucher_number, amount, currency, concept, status, created_at, created_by, last_updated_at, last_updated_by`

// PgxServicePaymentRepository implements the service payment ports against
// PostgreSQL.
type PgxServicePaymentRepository struct {
	BaseRepository
}

// NewServicePaymentRepository creates a repository for service payments.
func NewServicePaymentRepository(pool *pgxpool.Pool) *PgxServicePaymentRepository {
	return &PgxServicePaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ServicePaymentRepositoryFacade = (*PgxServicePaymentRepository)(nil)

// SavePaymentWithEntry persists the payment and its ledger debit together.
func (r *PgxServicePaymentRepository) SavePaymentWithEntry(ctx context.Context, payment domain.ServicePayment, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelServicePayment(payment)
	_, err = tx.Exec(ctx, `
		INSERT INTO pagos_servicios (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.PaymentID, m.Provider, m.VoucherNumber, m.Amount, m.Currency,
		m.Concept, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert service payment "+payment.PaymentID, err)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CancelPaymentWithEntry flips the payment to cancelled and appends its
// compensating credit in one unit.
func (r *PgxServicePaymentRepository) CancelPaymentWithEntry(ctx context.Context, payment domain.ServicePayment, intent domain.EntryIntent) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelServicePayment(payment)
	tag, err := tx.Exec(ctx, `
		UPDATE pagos_servicios
		SET status = $1, concept = $2, last_updated_at = $3, last_updated_by = $4
		WHERE payment_id = $5 AND status != $1;
	`,
		m.Status, m.Concept, m.LastUpdatedAt, m.LastUpdatedBy, m.PaymentID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel service payment "+payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewAppError(409, "service payment "+payment.PaymentID+" already cancelled", apperrors.ErrConflict)
	}

	entry, err := appendEntryInTx(ctx, tx, intent, payment.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindPaymentByID retrieves a payment by its identifier.
func (r *PgxServicePaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.ServicePayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pagos_servicios WHERE payment_id = $1;`

	m, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find service payment "+paymentID, err)
	}

	payment := mapping.ToDomainServicePayment(m)
	return &payment, nil
}

// ListPayments retrieves a page of payments, optionally filtered by
// provider, newest first.
func (r *PgxServicePaymentRepository) ListPayments(ctx context.Context, provider *domain.ServiceProvider, limit int, nextToken *string) ([]domain.ServicePayment, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	query := `SELECT ` + paymentColumns + ` FROM pagos_servicios`
	args := []interface{}{}
	where := []string{}

	if provider != nil {
		args = append(args, string(*provider))
		where = append(where, "provider = $"+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, createdAt)
		first := strconv.Itoa(len(args))
		args = append(args, id)
		second := strconv.Itoa(len(args))
		where = append(where, "(created_at, payment_id) < ($"+first+", $"+second+")")
	}

	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, payment_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query service payments", err)
	}
	defer rows.Close()

	payments := []domain.ServicePayment{}
	for rows.Next() {
		m, scanErr := scanPaymentRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan service payment row", scanErr)
		}
		payments = append(payments, mapping.ToDomainServicePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating service payment rows", err)
	}

	var nextTokenVal *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PaymentID)
		nextTokenVal = &token
	}

	return payments, nextTokenVal, nil
}

func scanPaymentRow(row rowScanner) (models.ServicePayment, error) {
	var m models.ServicePayment
	err := row.Scan(
		&m.PaymentID,
		&m.Provider,
		&m.VoucherNumber,
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
