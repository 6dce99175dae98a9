package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/cajacentral/caja_backend/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.RateCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewRateCache(client, time.Minute), mr
}

func sampleSnapshot() domain.ExchangeRateSnapshot {
	return domain.ExchangeRateSnapshot{
		SnapshotID:  "snap-1",
		EffectiveAt: time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC),
		RateDolar:   decimal.NewFromInt(7300),
		RateReal:    decimal.NewFromInt(1350),
		IsCurrent:   true,
	}
}

func TestRateCache_SetAndGetCurrent(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.GetCurrent(ctx)
	assert.False(t, ok)

	want := sampleSnapshot()
	c.SetCurrent(ctx, want)

	got, ok := c.GetCurrent(ctx)
	require.True(t, ok)
	assert.Equal(t, want.SnapshotID, got.SnapshotID)
	assert.True(t, got.RateDolar.Equal(want.RateDolar))
	assert.True(t, got.RateReal.Equal(want.RateReal))
}

func TestRateCache_EntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetCurrent(ctx, sampleSnapshot())
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetCurrent(ctx)
	assert.False(t, ok)
}

func TestRateCache_InvalidateCurrent(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetCurrent(ctx, sampleSnapshot())
	c.InvalidateCurrent(ctx)

	_, ok := c.GetCurrent(ctx)
	assert.False(t, ok)
}

func TestRateCache_NilClientIsAlwaysMiss(t *testing.T) {
	c := cache.NewRateCache(nil, time.Minute)
	ctx := context.Background()

	c.SetCurrent(ctx, sampleSnapshot())
	_, ok := c.GetCurrent(ctx)
	assert.False(t, ok)
}
