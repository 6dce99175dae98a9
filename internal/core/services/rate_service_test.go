package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cajacentral/caja_backend/internal/apperrors"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/internal/core/services"
	"github.com/cajacentral/caja_backend/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockRateRepository
	service      *services.RateService
	at           time.Time
	dayStart     time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateRepository)
	suite.service = services.NewRateService(suite.mockRateRepo, cache.NewRateCache(nil, time.Minute))
	suite.at = time.Date(2025, 8, 14, 15, 30, 0, 0, time.UTC)
	suite.dayStart = time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
}

func snapshot(id string, dolar int64) *domain.ExchangeRateSnapshot {
	return &domain.ExchangeRateSnapshot{
		SnapshotID: id,
		RateDolar:  decimal.NewFromInt(dolar),
		RateReal:   decimal.NewFromInt(1350),
	}
}

func (suite *RateServiceTestSuite) TestResolve_SameDaySnapshotWins() {
	ctx := context.Background()
	want := snapshot("same-day", 7300)

	suite.mockRateRepo.On("FindLatestOnDay", ctx, suite.at).Return(want, nil).Once()

	got, err := suite.service.Resolve(ctx, suite.at)

	suite.Require().NoError(err)
	suite.Equal("same-day", got.SnapshotID)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestBefore")
}

func (suite *RateServiceTestSuite) TestResolve_FallsBackToBeforeDayStart() {
	ctx := context.Background()
	want := snapshot("yesterday", 7250)

	suite.mockRateRepo.On("FindLatestOnDay", ctx, suite.at).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestBefore", ctx, suite.dayStart).Return(want, nil).Once()

	got, err := suite.service.Resolve(ctx, suite.at)

	suite.Require().NoError(err)
	suite.Equal("yesterday", got.SnapshotID)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindCurrent")
}

func (suite *RateServiceTestSuite) TestResolve_FallsBackToCurrent() {
	ctx := context.Background()
	want := snapshot("flagged-current", 7310)

	suite.mockRateRepo.On("FindLatestOnDay", ctx, suite.at).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestBefore", ctx, suite.dayStart).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindCurrent", ctx).Return(want, nil).Once()

	got, err := suite.service.Resolve(ctx, suite.at)

	suite.Require().NoError(err)
	suite.Equal("flagged-current", got.SnapshotID)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatest")
}

func (suite *RateServiceTestSuite) TestResolve_FallsBackToLatestOverall() {
	ctx := context.Background()
	want := snapshot("latest", 7320)

	suite.mockRateRepo.On("FindLatestOnDay", ctx, suite.at).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestBefore", ctx, suite.dayStart).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindCurrent", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatest", ctx).Return(want, nil).Once()

	got, err := suite.service.Resolve(ctx, suite.at)

	suite.Require().NoError(err)
	suite.Equal("latest", got.SnapshotID)
}

func (suite *RateServiceTestSuite) TestResolve_EmptyTableYieldsZeroRates() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestOnDay", ctx, suite.at).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestBefore", ctx, suite.dayStart).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindCurrent", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatest", ctx).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.Resolve(ctx, suite.at)

	suite.Require().NoError(err)
	suite.True(got.RateDolar.IsZero())
	suite.True(got.RateReal.IsZero())
}

func (suite *RateServiceTestSuite) TestResolve_RepositoryErrorPropagates() {
	ctx := context.Background()
	repoErr := apperrors.NewAppError(500, "db down", nil)

	suite.mockRateRepo.On("FindLatestOnDay", ctx, suite.at).Return(nil, repoErr).Once()

	_, err := suite.service.Resolve(ctx, suite.at)

	suite.Require().Error(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestBefore")
}

func (suite *RateServiceTestSuite) TestCurrent_CacheHitSkipsRepository() {
	mr := miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rateCache := cache.NewRateCache(client, time.Minute)
	service := services.NewRateService(suite.mockRateRepo, rateCache)
	ctx := context.Background()

	want := snapshot("cached", 7300)
	suite.mockRateRepo.On("FindCurrent", ctx).Return(want, nil).Once()

	// First call misses the cache and hits the repository.
	first, err := service.Current(ctx)
	suite.Require().NoError(err)
	suite.Equal("cached", first.SnapshotID)

	// Second call is served from the cache.
	second, err := service.Current(ctx)
	suite.Require().NoError(err)
	suite.Equal("cached", second.SnapshotID)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "FindCurrent", 1)
}

func (suite *RateServiceTestSuite) TestCurrent_NoFlaggedSnapshotFallsBackToLatest() {
	ctx := context.Background()
	want := snapshot("latest", 7320)

	suite.mockRateRepo.On("FindCurrent", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatest", ctx).Return(want, nil).Once()

	got, err := suite.service.Current(ctx)

	suite.Require().NoError(err)
	suite.Equal("latest", got.SnapshotID)
}

func (suite *RateServiceTestSuite) TestCurrent_EmptyTableYieldsZeroRates() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindCurrent", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatest", ctx).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.Current(ctx)

	suite.Require().NoError(err)
	suite.True(got.RateDolar.IsZero())
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
