package domain

import "github.com/shopspring/decimal"

// ServiceProvider is one of the third-party payment services the business
// settles on behalf of customers.
type ServiceProvider string

const (
	ProviderAquipago ServiceProvider = "AQUIPAGO"
	ProviderWepa     ServiceProvider = "WEPA"
)

// IsValid reports whether p is a known provider.
func (p ServiceProvider) IsValid() bool {
	return p == ProviderAquipago || p == ProviderWepa
}

// ServicePayment records cash paid out to a payment-service provider.
type ServicePayment struct {
	PaymentID     string          `json:"paymentID"`
	Provider      ServiceProvider `json:"provider"`
	VoucherNumber string          `json:"voucherNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Concept       string          `json:"concept"`
	Status        OperationStatus `json:"status"`
	AuditFields
}

// IsCancelled reports whether the payment reached its terminal state.
func (p ServicePayment) IsCancelled() bool {
	return p.Status == StatusCancelled
}
