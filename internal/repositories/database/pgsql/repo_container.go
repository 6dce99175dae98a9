package pgsql

import (
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository over the shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepo:         NewLedgerRepository(pool),
		ExchangeRepo:       NewExchangeRepository(pool),
		ExpenseRepo:        NewExpenseRepository(pool),
		DepositRepo:        NewDepositRepository(pool),
		AdvanceRepo:        NewAdvanceRepository(pool),
		ServicePaymentRepo: NewServicePaymentRepository(pool),
		RateRepo:           NewRateRepository(pool),
		PharmacyRepo:       NewPharmacyRepository(pool),
	}
}
