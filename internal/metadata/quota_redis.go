// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/libris/internal/platform/constants"
)

// RedisCounter implements [Counter] with INCR and a TTL set on first use.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a new Redis-backed Counter.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

/*
Increment bumps the counter for key and returns its new value.

The key expires window after its first increment, which makes the counter a
fixed window. INCR and EXPIRE NX run in one pipeline so a crash between them
cannot leave an immortal key.

Parameters:
  - ctx: context.Context
  - key: string (window identifier, prefixed here)
  - window: time.Duration

Returns:
  - int64: Counter value after the increment
  - error: Connectivity errors
*/
func (counter *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := constants.RedisPrefixMetadataQuota + key

	pipe := counter.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis_quota_incr_failed: %w", err)
	}

	return incr.Val(), nil
}
