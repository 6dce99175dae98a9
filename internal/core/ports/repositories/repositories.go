package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerRepo         LedgerRepositoryFacade
	ExchangeRepo       ExchangeRepositoryFacade
	ExpenseRepo        ExpenseRepositoryFacade
	DepositRepo        DepositRepositoryFacade
	AdvanceRepo        AdvanceRepositoryFacade
	ServicePaymentRepo ServicePaymentRepositoryFacade
	RateRepo           RateRepositoryFacade
	PharmacyRepo       PharmacyRepositoryFacade
}
