// Package cache memoises computed analyses in Redis so an identical request
// is answered without running the engine again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/config"
	"github.com/mamadbah2/ranch/internal/domain/models"
)

const (
	keyPrefix  = "ranch:analysis:%s"
	DefaultTTL = time.Hour
)

// ResultCache stores analysis records by request fingerprint.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.AnalysisRecord, bool, error)
	Set(ctx context.Context, key string, record models.AnalysisRecord) error
}

// RedisCache implements ResultCache on a Redis client.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}

	return newRedisCache(client, ttl, logger), nil
}

func newRedisCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached record for key. A miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.AnalysisRecord, bool, error) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(keyPrefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var record models.AnalysisRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		c.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return &record, true, nil
}

// Set stores record under key for the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, record models.AnalysisRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, fmt.Sprintf(keyPrefix, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool when it owns one.
func (c *RedisCache) Close() error {
	if closer, ok := c.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Key fingerprints an analysis request. Equal inputs under equal locale
// settings and engine version share a key.
func Key(data models.LivestockData, locale models.LocaleConfig, engineVersion string) (string, error) {
	payload, err := json.Marshal(struct {
		Version string               `json:"v"`
		Data    models.LivestockData `json:"d"`
		Locale  models.LocaleConfig  `json:"l"`
	}{engineVersion, data, locale})
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
