// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libRabbitMQ "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRedis struct {
	client goredis.UniversalClient
	err    error
}

func (s staticRedis) GetClient(context.Context) (goredis.UniversalClient, error) {
	return s.client, s.err
}

func readyBody(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	deps, ok := body["dependencies"].(map[string]any)
	require.True(t, ok)

	status, _ := body["status"].(string)

	return status, deps
}

func TestHealthServer_HandleHealth(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer("0", nil, nil, &log.NoneLogger{})

	rec := httptest.NewRecorder()
	hs.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alive", body["status"])
}

func TestHealthServer_HandleReady_NothingConfigured(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer("0", nil, nil, &log.NoneLogger{})

	rec := httptest.NewRecorder()
	hs.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	status, deps := readyBody(t, rec)
	assert.Equal(t, "not_ready", status)

	rabbit := deps["rabbitmq"].(map[string]any)
	assert.Equal(t, "connection not configured", rabbit["message"])

	redisDep := deps["redis"].(map[string]any)
	assert.Equal(t, "not_ready", redisDep["status"])
}

func TestHealthServer_HandleReady_RedisUpRabbitDown(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	hs := NewHealthServer("0", &libRabbitMQ.RabbitMQConnection{Connected: false}, staticRedis{client: client}, &log.NoneLogger{})

	rec := httptest.NewRecorder()
	hs.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	status, deps := readyBody(t, rec)
	assert.Equal(t, "not_ready", status)
	assert.Equal(t, "ready", deps["redis"].(map[string]any)["status"])
	assert.Equal(t, "connection is closed", deps["rabbitmq"].(map[string]any)["message"])
}

func TestHealthServer_CheckRedis(t *testing.T) {
	t.Parallel()

	hs := &HealthServer{redisConnection: staticRedis{err: errors.New("dial tcp: refused")}, logger: &log.NoneLogger{}}
	assert.Equal(t, "connection failed", hs.checkRedis(context.Background()).Message)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	mr.Close()

	hs.redisConnection = staticRedis{client: client}
	assert.Equal(t, "ping failed", hs.checkRedis(context.Background()).Message)
}

func TestHealthServer_CheckRabbitMQ(t *testing.T) {
	t.Parallel()

	hs := &HealthServer{logger: &log.NoneLogger{}}
	assert.Equal(t, "connection not configured", hs.checkRabbitMQ().Message)

	hs.rabbitMQConnection = &libRabbitMQ.RabbitMQConnection{Connected: true}
	assert.Equal(t, "connection is closed", hs.checkRabbitMQ().Message)
}

func TestHealthServer_StartUsesNamedGoroutine(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer("0", nil, nil, &log.NoneLogger{})
	assert.Equal(t, ":0", hs.server.Addr)

	var captured string

	hs.goNamedFn = func(_ log.Logger, name string, fn func()) {
		captured = name

		go fn()
	}

	hs.Start()
	hs.Shutdown()

	assert.Equal(t, "health-server", captured)
}
