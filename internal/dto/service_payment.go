package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateServicePaymentRequest defines the payload for a provider payout.
type CreateServicePaymentRequest struct {
	Provider      string          `json:"provider" binding:"required,oneof=AQUIPAGO WEPA"`
	VoucherNumber string          `json:"voucherNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currencycode"`
	Concept       string          `json:"concept"`
}

// ServicePaymentResponse defines the API shape of a provider payment.
type ServicePaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	Provider      string          `json:"provider"`
	VoucherNumber string          `json:"voucherNumber"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Concept       string          `json:"concept"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToServicePaymentResponse converts a domain.ServicePayment to its API shape.
func ToServicePaymentResponse(p *domain.ServicePayment) ServicePaymentResponse {
	return ServicePaymentResponse{
		PaymentID:     p.PaymentID,
		Provider:      string(p.Provider),
		VoucherNumber: p.VoucherNumber,
		Amount:        p.Amount,
		CurrencyCode:  p.Currency.ISOCode(),
		Concept:       p.Concept,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ListServicePaymentsResponse wraps a page of provider payments.
type ListServicePaymentsResponse struct {
	Payments  []ServicePaymentResponse `json:"payments"`
	NextToken *string                  `json:"nextToken,omitempty"`
}
