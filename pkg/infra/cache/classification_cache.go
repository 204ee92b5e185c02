// Package cache memoizes classification backend results for identical
// content. Conversation history itself is never stored; only the backend's
// answer for a given content hash, TTL-bound. A missing or failing redis
// degrades to pass-through, never to a request failure.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
)

const DefaultTTL = 5 * time.Minute

// ResultCache stores classification results keyed by content.
type ResultCache interface {
	Get(ctx context.Context, kind domain.Kind, content []byte) (*domain.AnalysisResult, bool)
	Set(ctx context.Context, kind domain.Kind, content []byte, result *domain.AnalysisResult)
}

type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisResultCache{client: client, ttl: ttl, logger: logger}
}

func Key(kind domain.Kind, content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("modfence:classification:%s:%x", kind, sum)
}

func (c *RedisResultCache) Get(ctx context.Context, kind domain.Kind, content []byte) (*domain.AnalysisResult, bool) {
	raw, err := c.client.Get(ctx, Key(kind, content)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).Warn("classification cache read failed")
		}
		return nil, false
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.logger.WithError(err).Warn("classification cache entry corrupt, ignoring")
		return nil, false
	}
	return &result, true
}

func (c *RedisResultCache) Set(ctx context.Context, kind domain.Kind, content []byte, result *domain.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, Key(kind, content), raw, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("classification cache write failed")
	}
}
