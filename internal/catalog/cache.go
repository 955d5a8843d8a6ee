// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/metrics"
	"card-advisor-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheKey = "catalog:cards"

// CachedStore is a Redis read-through cache in front of another Source.
// Redis failures are logged and the underlying source is used instead.
type CachedStore struct {
	source Source
	redis  *redis.Client
	key    string
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(source Source, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		source: source,
		redis:  client,
		key:    DefaultCacheKey,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (s *CachedStore) LoadAll(ctx context.Context) ([]models.CardRecord, error) {
	if cards, ok := s.fromCache(ctx); ok {
		return cards, nil
	}

	cards, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(cards); err == nil {
			if err := s.redis.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
				s.logger.Warn("failed to cache catalog", map[string]interface{}{"error": err})
			}
		}
	}
	return cards, nil
}

func (s *CachedStore) fromCache(ctx context.Context) ([]models.CardRecord, bool) {
	if s.redis == nil {
		return nil, false
	}

	val, err := s.redis.Get(ctx, s.key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CatalogCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	case err != nil:
		metrics.CatalogCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn("catalog cache unavailable", map[string]interface{}{"error": err})
		return nil, false
	}

	var cards []models.CardRecord
	if err := json.Unmarshal([]byte(val), &cards); err != nil {
		metrics.CatalogCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn("corrupt catalog cache entry", map[string]interface{}{"error": err})
		return nil, false
	}
	metrics.CatalogCacheRequests.WithLabelValues("hit").Inc()
	return cards, true
}

// Invalidate drops the cached catalog, e.g. after a reseed.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, s.key).Err()
}
