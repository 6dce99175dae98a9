package services

import (
	"context"
	"errors"
	"time"

	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	portsrepo "github.com/cajacentral/caja_backend/internal/core/ports/repositories"
	portssvc "github.com/cajacentral/caja_backend/internal/core/ports/services"
	"github.com/cajacentral/caja_backend/internal/middleware"
	"github.com/cajacentral/caja_backend/pkg/cache"
)

// RateService resolves which rate snapshot applies at a given moment.
//
// The resolution cascade, in order:
//  1. the latest snapshot on the same calendar day as the moment,
//  2. the latest snapshot before that day started,
//  3. the snapshot flagged current,
//  4. the latest snapshot overall,
//  5. the zero-rate default when the table is empty.
//
// A missing snapshot is never fatal to the caller; the zero default makes
// foreign amounts collapse to zero instead of failing the report.
type RateService struct {
	rateRepo  portsrepo.RateRepositoryFacade
	rateCache *cache.RateCache
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, rateCache *cache.RateCache) *RateService {
	return &RateService{rateRepo: rateRepo, rateCache: rateCache}
}

var _ portssvc.RateSvcFacade = (*RateService)(nil)

// Resolve returns the rates in effect at the given moment.
func (s *RateService) Resolve(ctx context.Context, at time.Time) (domain.ExchangeRateSnapshot, error) {
	snapshot, err := s.rateRepo.FindLatestOnDay(ctx, at)
	if err == nil {
		return *snapshot, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.ExchangeRateSnapshot{}, err
	}

	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	snapshot, err = s.rateRepo.FindLatestBefore(ctx, dayStart)
	if err == nil {
		return *snapshot, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.ExchangeRateSnapshot{}, err
	}

	snapshot, err = s.rateRepo.FindCurrent(ctx)
	if err == nil {
		return *snapshot, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.ExchangeRateSnapshot{}, err
	}

	snapshot, err = s.rateRepo.FindLatest(ctx)
	if err == nil {
		return *snapshot, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.ExchangeRateSnapshot{}, err
	}

	middleware.GetLoggerFromCtx(ctx).Warn("no rate snapshot available, using zero rates",
		"at", at.Format(time.RFC3339))
	return domain.ZeroRates(), nil
}

// Current returns the snapshot flagged current, preferring the cache. When
// no snapshot carries the flag the latest one stands in for it.
func (s *RateService) Current(ctx context.Context) (domain.ExchangeRateSnapshot, error) {
	if snapshot, ok := s.rateCache.GetCurrent(ctx); ok {
		return *snapshot, nil
	}

	snapshot, err := s.rateRepo.FindCurrent(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		snapshot, err = s.rateRepo.FindLatest(ctx)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("no rate snapshot available, using zero rates")
			return domain.ZeroRates(), nil
		}
		return domain.ExchangeRateSnapshot{}, err
	}

	s.rateCache.SetCurrent(ctx, *snapshot)
	return *snapshot, nil
}
