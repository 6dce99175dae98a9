package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateSnapshot is one timestamped reading of the conversion rates
// from the foreign currencies into guaraníes. Snapshots are produced by an
// external feed and are read-only here.
type ExchangeRateSnapshot struct {
	SnapshotID  string          `json:"snapshotID"`
	EffectiveAt time.Time       `json:"effectiveAt"`
	RateDolar   decimal.Decimal `json:"rateDolar"` // guaraníes per dólar
	RateReal    decimal.Decimal `json:"rateReal"`  // guaraníes per real
	IsCurrent   bool            `json:"isCurrent"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// RateFor returns the guaraní conversion rate for the given currency.
// Guaraníes convert at 1.
func (s ExchangeRateSnapshot) RateFor(c Currency) decimal.Decimal {
	switch c {
	case Dolares:
		return s.RateDolar
	case Reales:
		return s.RateReal
	default:
		return decimal.NewFromInt(1)
	}
}

// ZeroRates is the documented fallback when no snapshot exists at all:
// foreign amounts convert to zero rather than failing the read.
func ZeroRates() ExchangeRateSnapshot {
	return ExchangeRateSnapshot{
		RateDolar: decimal.Zero,
		RateReal:  decimal.Zero,
	}
}
