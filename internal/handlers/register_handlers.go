package handlers

import (
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container's facades.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.GET("/", getHome)

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerLedgerRoutes(v1, services.Ledger)
	registerExchangeRoutes(v1, services.Exchange)
	registerExpenseRoutes(v1, services.Expense)
	registerDepositRoutes(v1, services.Deposit)
	registerAdvanceRoutes(v1, services.Advance)
	registerServicePaymentRoutes(v1, services.ServicePayment)
	registerRateRoutes(v1, services.Rate)
	registerReportingRoutes(v1, services.Reporting)
}
