package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is the subset of the redis client used by the worker cache.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type cachedService struct {
	Service
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedService decorates GetByID with a read-through redis cache.
// Cache failures are logged and the request falls through to next.
func NewCachedService(next Service, cache Cache, ttl time.Duration, logger *zap.Logger) Service {
	return &cachedService{Service: next, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(id string) string {
	return "worker:" + id
}

func (s *cachedService) GetByID(ctx context.Context, id string) (*Worker, error) {
	key := cacheKey(id)

	raw, err := s.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var w Worker
		if err := json.Unmarshal(raw, &w); err == nil {
			return &w, nil
		}
		s.logger.Warn("discarding undecodable cached worker", zap.String("key", key))
		s.cache.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("worker cache read failed", zap.String("key", key), zap.Error(err))
	}

	w, err := s.Service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(w); err == nil {
		if err := s.cache.Set(ctx, key, b, s.ttl).Err(); err != nil {
			s.logger.Warn("worker cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return w, nil
}
