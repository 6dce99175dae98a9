package utils

import (
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision
// for a given currency.
// Example: 12.3456 in dólares (precision 2) returns "12.35"
// Example: 12.3456 in guaraníes (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(currency.Precision()).String()
}
