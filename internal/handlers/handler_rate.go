package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/dto"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler exposes the rate resolver.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/current", h.currentRates)
		rates.GET("/resolve", h.resolveRates)
	}
}

func (h *rateHandler) currentRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.rateService.Current(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(snapshot))
}

// resolveRates answers "which rates applied at this moment", the same
// question the aggregator asks per entry.
func (h *rateHandler) resolveRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' timestamp, expected RFC3339: " + err.Error()})
			return
		}
		at = parsed
	}

	snapshot, err := h.rateService.Resolve(c.Request.Context(), at)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(snapshot))
}
