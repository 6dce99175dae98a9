package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// advanceHandler handles HTTP requests for cash advances (vales).
type advanceHandler struct {
	advanceService portssvc.AdvanceSvcFacade
}

func newAdvanceHandler(as portssvc.AdvanceSvcFacade) *advanceHandler {
	return &advanceHandler{advanceService: as}
}

func registerAdvanceRoutes(rg *gin.RouterGroup, advanceService portssvc.AdvanceSvcFacade) {
	h := newAdvanceHandler(advanceService)

	advances := rg.Group("/advances")
	{
		advances.POST("", h.createAdvance)
		advances.GET("", h.listAdvances)
		advances.POST("/:advance_id/returns", h.registerReturn)
		advances.POST("/:advance_id/cancel", h.cancelAdvance)
	}
}

func (h *advanceHandler) createAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	advance, entry, err := h.advanceService.CreateAdvance(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"advance": dto.ToAdvanceResponse(advance),
		"entry":   dto.ToLedgerEntryResponse(*entry),
	})
}

func (h *advanceHandler) listAdvances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := parsePageParams(c)

	resp, err := h.advanceService.ListAdvances(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *advanceHandler) registerReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	advanceID := c.Param("advance_id")

	var req dto.RegisterReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	advance, entry, err := h.advanceService.RegisterReturn(c.Request.Context(), advanceID, req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"advance": dto.ToAdvanceResponse(advance),
		"entry":   dto.ToLedgerEntryResponse(*entry),
	})
}

func (h *advanceHandler) cancelAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	advanceID := c.Param("advance_id")

	var req dto.CancelOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	advance, entry, err := h.advanceService.CancelAdvance(c.Request.Context(), advanceID, req.Reason, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"advance":           dto.ToAdvanceResponse(advance),
		"compensatingEntry": dto.ToLedgerEntryResponse(*entry),
	})
}
