package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const currentRateKey = "caja:cotizacion:current"

// RateCache keeps the current rate snapshot in Redis so the balance and
// aggregation endpoints do not hit the cotizaciones table on every request.
// A nil client disables caching; every lookup is then a miss.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache creates a rate cache with the given TTL.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis from a URL. An empty URL yields nil,
// which RateCache treats as cache-disabled.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// GetCurrent returns the cached current snapshot, or false on a miss.
// Redis errors count as misses; the caller falls through to the database.
func (c *RateCache) GetCurrent(ctx context.Context) (*domain.ExchangeRateSnapshot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, currentRateKey).Bytes()
	if err != nil {
		return nil, false
	}

	var snapshot domain.ExchangeRateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}

// SetCurrent stores the snapshot under the cache TTL. Failures are
// swallowed; the cache is an optimization, not a source of truth.
func (c *RateCache) SetCurrent(ctx context.Context, snapshot domain.ExchangeRateSnapshot) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	c.client.Set(ctx, currentRateKey, data, c.ttl)
}

// InvalidateCurrent drops the cached snapshot.
func (c *RateCache) InvalidateCurrent(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, currentRateKey)
}
