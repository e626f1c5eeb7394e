// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

type failingMongo struct{}

func (failingMongo) GetDB(context.Context) (*mongo.Client, error) {
	return nil, errors.New("server selection timeout")
}

func newReadinessApp(deps *ReadinessDeps) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/ready", readinessHandler(deps))

	return app
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	tests := []struct {
		name          string
		deps          *ReadinessDeps
		expectMongo   string
		expectRedis   string
	}{
		{
			name:        "nothing configured",
			deps:        nil,
			expectMongo: "connection not configured",
			expectRedis: "connection not configured",
		},
		{
			name: "redis ready, mongo unreachable",
			deps: &ReadinessDeps{
				MongoConnection: failingMongo{},
				RedisConnection: fakeRedisConnection{client: client},
			},
			expectMongo: "failed to get connection",
		},
		{
			name: "redis client unavailable",
			deps: &ReadinessDeps{
				RedisConnection: fakeRedisConnection{err: errors.New("refused")},
			},
			expectMongo: "connection not configured",
			expectRedis: "failed to get client",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newReadinessApp(tt.deps)

			code, payload := doRequest(t, app, http.MethodGet, "/ready", "")
			assert.Equal(t, http.StatusServiceUnavailable, code)
			assert.Equal(t, "not_ready", payload["status"])

			deps, ok := payload["dependencies"].(map[string]any)
			assert.True(t, ok)

			mongoResult := deps["mongodb"].(map[string]any)
			assert.Equal(t, tt.expectMongo, mongoResult["message"])

			redisResult := deps["redis"].(map[string]any)
			if tt.expectRedis == "" {
				assert.Equal(t, "ready", redisResult["status"])
			} else {
				assert.Equal(t, tt.expectRedis, redisResult["message"])
			}
		})
	}
}

func TestCheckRedis_PingFailure(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	mr.SetError("LOADING")

	result := checkRedis(fakeRedisConnection{client: client})
	assert.Equal(t, "not_ready", result.Status)
	assert.Equal(t, "ping failed", result.Message)
}
