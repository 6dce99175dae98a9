package handlers

import (
	"net/http"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler exposes consolidated views: per-drawer balances, the
// cross-currency aggregate and the pharmacy sheet.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.balances)
		reports.GET("/aggregate", h.aggregate)
		reports.GET("/pharmacy", h.pharmacyMovements)
	}
}

func (h *reportingHandler) balances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.Balances(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) aggregate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AggregateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.EntryFilter{From: params.From, To: params.To}
	if params.CurrencyCode != "" {
		currency, err := domain.ParseCurrency(params.CurrencyCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Currency = &currency
	}
	if params.Kind != "" {
		filter.Kinds = []domain.EntryKind{domain.EntryKind(params.Kind)}
	}

	total, err := h.reportingService.TotalInGuaranies(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AggregateResponse{TotalGuaranies: total})
}

func (h *reportingHandler) pharmacyMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := parsePageParams(c)

	resp, err := h.reportingService.ListPharmacyMovements(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
