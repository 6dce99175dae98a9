package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles direct reads of the caja mayor ledger plus manual
// adjustments.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	movements := rg.Group("/movements")
	{
		movements.GET("", h.listMovements)
		movements.POST("/adjustments", h.appendAdjustment)
		movements.GET("/continuity", h.verifyContinuity)
	}
}

func (h *ledgerHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) appendAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AppendAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.ledgerService.AppendAdjustment(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(*entry))
}

func (h *ledgerHandler) verifyContinuity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := domain.ParseCurrency(c.Query("currency"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	broken, err := h.ledgerService.VerifyContinuity(c.Request.Context(), currency)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	if broken != nil {
		entry := dto.ToLedgerEntryResponse(*broken)
		c.JSON(http.StatusOK, gin.H{"consistent": false, "firstBrokenEntry": entry})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consistent": true})
}
