package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	"github.com/cajacentral/caja_backend/internal/models"
	"github.com/cajacentral/caja_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rateColumns = `snapshot_id, effective_at, rate_dolar, rate_real, is_current, created_at`

// PgxRateRepository reads exchange-rate snapshots from PostgreSQL. The core
// only ever reads this table; the rate feed writes it.
type PgxRateRepository struct {
	BaseRepository
}

// NewRateRepository creates a repository for rate snapshots.
func NewRateRepository(pool *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// FindLatestOnDay retrieves the most recent snapshot effective on the same
// calendar day as at. Day boundaries use at's location.
func (r *PgxRateRepository) FindLatestOnDay(ctx context.Context, at time.Time) (*domain.ExchangeRateSnapshot, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `SELECT ` + rateColumns + ` FROM cotizaciones
		WHERE effective_at >= $1 AND effective_at < $2
		ORDER BY effective_at DESC LIMIT 1;`

	return r.findOne(ctx, query, "snapshot on day", dayStart, dayEnd)
}

// FindLatestBefore retrieves the most recent snapshot strictly before t.
func (r *PgxRateRepository) FindLatestBefore(ctx context.Context, t time.Time) (*domain.ExchangeRateSnapshot, error) {
	query := `SELECT ` + rateColumns + ` FROM cotizaciones
		WHERE effective_at < $1
		ORDER BY effective_at DESC LIMIT 1;`

	return r.findOne(ctx, query, "snapshot before", t)
}

// FindCurrent retrieves the snapshot flagged as current.
func (r *PgxRateRepository) FindCurrent(ctx context.Context) (*domain.ExchangeRateSnapshot, error) {
	query := `SELECT ` + rateColumns + ` FROM cotizaciones
		WHERE is_current ORDER BY effective_at DESC LIMIT 1;`

	return r.findOne(ctx, query, "current snapshot")
}

// FindLatest retrieves the newest snapshot regardless of date.
func (r *PgxRateRepository) FindLatest(ctx context.Context) (*domain.ExchangeRateSnapshot, error) {
	query := `SELECT ` + rateColumns + ` FROM cotizaciones
		ORDER BY effective_at DESC LIMIT 1;`

	return r.findOne(ctx, query, "latest snapshot")
}

func (r *PgxRateRepository) findOne(ctx context.Context, query, scope string, args ...interface{}) (*domain.ExchangeRateSnapshot, error) {
	var m models.ExchangeRateSnapshot
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.SnapshotID,
		&m.EffectiveAt,
		&m.RateDolar,
		&m.RateReal,
		&m.IsCurrent,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find "+scope, err)
	}

	snapshot := mapping.ToDomainRateSnapshot(m)
	return &snapshot, nil
}
