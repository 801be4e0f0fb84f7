// Package cache puts a Redis cache-aside layer in front of any icon source.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/common/metrics"
	"icon-registry/internal/icons/catalogue"
)

const DefaultPrefix = "icon:"

// Source serves lookups from Redis and fills it from the wrapped source.
// Redis failures never fail a lookup; the wrapped source is used directly.
type Source struct {
	redis  redis.Cmdable
	inner  catalogue.Source
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

func New(rdb redis.Cmdable, inner catalogue.Source, ttl time.Duration, prefix string, log logger.Logger) *Source {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Source{
		redis:  rdb,
		inner:  inner,
		ttl:    ttl,
		prefix: prefix,
		logger: logger.OrNoOp(log).WithFields(map[string]interface{}{"component": "icon-cache"}),
	}
}

func (s *Source) Key(name string) string {
	return s.prefix + name
}

func (s *Source) Lookup(ctx context.Context, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	key := s.Key(name)

	val, err := s.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return val, true
	case errors.Is(err, redis.Nil):
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
		s.warn(apperrors.NewCacheUnavailableError("get", err), name)
	}

	if s.inner == nil {
		return "", false
	}
	content, ok := s.inner.Lookup(ctx, name)
	if !ok || strings.TrimSpace(content) == "" {
		return content, ok
	}

	if err := s.redis.Set(ctx, key, content, s.ttl).Err(); err != nil {
		s.warn(apperrors.NewCacheUnavailableError("set", err), name)
	}
	return content, true
}

func (s *Source) warn(err *apperrors.StandardError, name string) {
	s.logger.Warn("icon cache bypassed", map[string]interface{}{
		"name":      name,
		"errorCode": err.Code,
		"error":     err.Error(),
	})
}
