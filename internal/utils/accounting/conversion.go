package accounting

import (
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertToGuaranies converts one ledger entry's signed magnitude into the
// reporting currency using the given snapshot's rates. Guaraní entries pass
// through untouched; foreign entries multiply by the snapshot rate for
// their currency. This is used by the cross-currency aggregator, which
// supplies the snapshot in effect at the entry's own timestamp.
func ConvertToGuaranies(entry domain.LedgerEntry, rates domain.ExchangeRateSnapshot) decimal.Decimal {
	signed := entry.SignedAmount()
	if entry.Currency == domain.ReportingCurrency {
		return signed
	}
	return signed.Mul(rates.RateFor(entry.Currency))
}

// ConvertPharmacyToGuaranies does the same for a shadow-ledger row, whose
// amount is already signed.
func ConvertPharmacyToGuaranies(entry domain.PharmacyEntry, rates domain.ExchangeRateSnapshot) decimal.Decimal {
	if entry.Currency == domain.ReportingCurrency {
		return entry.Amount
	}
	return entry.Amount.Mul(rates.RateFor(entry.Currency))
}
