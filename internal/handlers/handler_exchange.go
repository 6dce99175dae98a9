package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeHandler handles HTTP requests for currency exchanges.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

func newExchangeHandler(es portssvc.ExchangeSvcFacade) *exchangeHandler {
	return &exchangeHandler{exchangeService: es}
}

func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade) {
	h := newExchangeHandler(exchangeService)

	exchanges := rg.Group("/exchanges")
	{
		exchanges.POST("", h.createExchange)
		exchanges.GET("", h.listExchanges)
		exchanges.GET("/:exchange_id", h.getExchange)
		exchanges.POST("/:exchange_id/cancel", h.cancelExchange)
	}
}

func (h *exchangeHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	exchange, entries, err := h.exchangeService.CreateExchange(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateExchangeResponse{
		Exchange: dto.ToExchangeResponse(exchange),
		Entries:  dto.ToLedgerEntryResponses(entries),
	})
}

func (h *exchangeHandler) getExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	exchangeID := c.Param("exchange_id")

	exchange, err := h.exchangeService.GetExchange(c.Request.Context(), exchangeID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(exchange))
}

func (h *exchangeHandler) listExchanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListExchangesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.exchangeService.ListExchanges(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *exchangeHandler) cancelExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	exchangeID := c.Param("exchange_id")

	var req dto.CancelOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelExchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	result, err := h.exchangeService.CancelExchange(c.Request.Context(), exchangeID, req.Reason, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CancelExchangeResponse{
		Exchange:            dto.ToExchangeResponse(result.Exchange),
		OriginalEntries:     dto.ToLedgerEntryResponses(result.OriginalEntries),
		CompensatingEntries: dto.ToLedgerEntryResponses(result.CompensatingEntries),
	})
}
