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

// servicePaymentHandler handles HTTP requests for provider payouts.
type servicePaymentHandler struct {
	paymentService portssvc.ServicePaymentSvcFacade
}

func newServicePaymentHandler(ps portssvc.ServicePaymentSvcFacade) *servicePaymentHandler {
	return &servicePaymentHandler{paymentService: ps}
}

func registerServicePaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.ServicePaymentSvcFacade) {
	h := newServicePaymentHandler(paymentService)

	payments := rg.Group("/service-payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.POST("/:payment_id/cancel", h.cancelPayment)
	}
}

func (h *servicePaymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateServicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateServicePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	payment, entry, err := h.paymentService.CreatePayment(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment": dto.ToServicePaymentResponse(payment),
		"entry":   dto.ToLedgerEntryResponse(*entry),
	})
}

func (h *servicePaymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := parsePageParams(c)

	var provider *domain.ServiceProvider
	if raw := c.Query("provider"); raw != "" {
		candidate := domain.ServiceProvider(raw)
		if !candidate.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown provider: " + raw})
			return
		}
		provider = &candidate
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), provider, limit, nextToken)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *servicePaymentHandler) cancelPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("payment_id")

	var req dto.CancelOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelServicePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	payment, entry, err := h.paymentService.CancelPayment(c.Request.Context(), paymentID, req.Reason, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":           dto.ToServicePaymentResponse(payment),
		"compensatingEntry": dto.ToLedgerEntryResponse(*entry),
	})
}
