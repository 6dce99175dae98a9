package services

import (
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/events"
	"github.com/cajacentral/caja_backend/pkg/cache"
)

// NewServiceContainer wires all application services over the repository
// provider, the movement publisher and the rate cache.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, publisher events.MovementPublisher, rateCache *cache.RateCache) *portssvc.ServiceContainer {
	rateSvc := NewRateService(repos.RateRepo, rateCache)

	return &portssvc.ServiceContainer{
		Ledger:         NewLedgerService(repos.LedgerRepo, publisher),
		Exchange:       NewExchangeService(repos.ExchangeRepo, repos.LedgerRepo, publisher),
		Expense:        NewExpenseService(repos.ExpenseRepo, repos.LedgerRepo, publisher),
		Deposit:        NewDepositService(repos.DepositRepo, repos.LedgerRepo, publisher),
		Advance:        NewAdvanceService(repos.AdvanceRepo, repos.LedgerRepo, publisher),
		ServicePayment: NewServicePaymentService(repos.ServicePaymentRepo, repos.LedgerRepo, publisher),
		Rate:           rateSvc,
		Reporting:      NewReportingService(repos.LedgerRepo, repos.PharmacyRepo, rateSvc),
	}
}
