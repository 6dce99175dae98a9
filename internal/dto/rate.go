package dto

import (
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse defines the API shape of a resolved rate snapshot.
type RateResponse struct {
	SnapshotID  string          `json:"snapshotID,omitempty"`
	EffectiveAt time.Time       `json:"effectiveAt"`
	RateDolar   decimal.Decimal `json:"rateDolar"`
	RateReal    decimal.Decimal `json:"rateReal"`
	IsCurrent   bool            `json:"isCurrent"`
}

// ToRateResponse converts a snapshot to its API shape.
func ToRateResponse(s domain.ExchangeRateSnapshot) RateResponse {
	return RateResponse{
		SnapshotID:  s.SnapshotID,
		EffectiveAt: s.EffectiveAt,
		RateDolar:   s.RateDolar,
		RateReal:    s.RateReal,
		IsCurrent:   s.IsCurrent,
	}
}
