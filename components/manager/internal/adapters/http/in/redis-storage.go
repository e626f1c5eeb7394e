// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"errors"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	pkgRedis "github.com/LerianStudio/datagage/pkg/redis"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitStorage is the counter backend of the limiter.
type RateLimitStorage = fiber.Storage

// RedisStorage keeps limiter counters in Redis. Every Redis failure lets the
// request through: Get reports a missing key and writes report success.
type RedisStorage struct {
	conn   pkgRedis.ClientProvider
	logger log.Logger
}

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a RedisStorage over the given connection.
func NewRedisStorage(conn pkgRedis.ClientProvider, logger log.Logger) *RedisStorage {
	return &RedisStorage{
		conn:   conn,
		logger: logger,
	}
}

func (s *RedisStorage) withClient(op, key string, fn func(ctx context.Context, client goredis.UniversalClient) error) {
	if s.conn == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constant.RateLimitStorageTimeout)
	defer cancel()

	client, err := s.conn.GetClient(ctx)
	if err != nil {
		s.logger.Errorf("rate-limit redis storage: failed to get client: %v", err)

		return
	}

	if err := fn(ctx, client); err != nil {
		s.logger.Warnf("rate-limit redis storage: %s %s failed: %v", op, key, err)
	}
}

// Get returns the counter stored under key, or nil when absent or unreadable.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	var val []byte

	s.withClient("get", key, func(ctx context.Context, client goredis.UniversalClient) error {
		v, err := client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return nil
			}

			return err
		}

		val = v

		return nil
	})

	return val, nil
}

// Set stores val under key for exp.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	s.withClient("set", key, func(ctx context.Context, client goredis.UniversalClient) error {
		return client.Set(ctx, key, val, exp).Err()
	})

	return nil
}

// Delete removes key.
func (s *RedisStorage) Delete(key string) error {
	s.withClient("delete", key, func(ctx context.Context, client goredis.UniversalClient) error {
		return client.Del(ctx, key).Err()
	})

	return nil
}

// Reset is a no-op; counters expire on their own and the database is shared.
func (s *RedisStorage) Reset() error {
	return nil
}

// Close is a no-op; the connection belongs to the bootstrap cleanup stack.
func (s *RedisStorage) Close() error {
	return nil
}
