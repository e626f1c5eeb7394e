// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedApp(cfg RateLimitConfig) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(RateLimiterMiddleware(cfg))

	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }

	app.Get("/health", ok)
	app.Get("/v1/data-sources", ok)
	app.Post("/v1/data-sources", ok)
	app.Post("/v1/data-sources/test", ok)
	app.Post("/v1/data-sources/:id/query", ok)
	app.Get("/v1/data-sources/:id/schema", ok)

	return app
}

func send(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)

	return resp
}

func TestRateLimiterMiddleware_Disabled(t *testing.T) {
	t.Parallel()

	app := newLimitedApp(RateLimitConfig{Enabled: false, GlobalMax: 1, RemoteMax: 1, WriteMax: 1, Window: time.Minute})

	for i := 0; i < 5; i++ {
		resp := send(t, app, http.MethodGet, "/v1/data-sources")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRateLimiterMiddleware_TiersAreIndependent(t *testing.T) {
	t.Parallel()

	app := newLimitedApp(RateLimitConfig{Enabled: true, GlobalMax: 2, RemoteMax: 1, WriteMax: 1, Window: time.Minute})

	assert.Equal(t, http.StatusOK, send(t, app, http.MethodPost, "/v1/data-sources/test").StatusCode)

	limited := send(t, app, http.MethodGet, "/v1/data-sources/1b2c/schema")
	assert.Equal(t, http.StatusTooManyRequests, limited.StatusCode)
	assert.NotEmpty(t, limited.Header.Get(fiber.HeaderRetryAfter))

	body, err := io.ReadAll(limited.Body)
	require.NoError(t, err)

	var payload rateLimitErrorResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, constant.ErrRateLimitExceeded.Error(), payload.Code)

	assert.Equal(t, http.StatusOK, send(t, app, http.MethodPost, "/v1/data-sources").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, send(t, app, http.MethodPost, "/v1/data-sources").StatusCode)

	assert.Equal(t, http.StatusOK, send(t, app, http.MethodGet, "/v1/data-sources").StatusCode)
	assert.Equal(t, http.StatusOK, send(t, app, http.MethodGet, "/v1/data-sources").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, send(t, app, http.MethodGet, "/v1/data-sources").StatusCode)
}

func TestRateLimiterMiddleware_ProbesBypass(t *testing.T) {
	t.Parallel()

	app := newLimitedApp(RateLimitConfig{Enabled: true, GlobalMax: 1, RemoteMax: 1, WriteMax: 1, Window: time.Minute})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send(t, app, http.MethodGet, "/health").StatusCode)
	}
}

func TestRateLimiterMiddleware_SharedStorage(t *testing.T) {
	t.Parallel()

	storage, _ := newMiniredisStorage(t)
	cfg := RateLimitConfig{Enabled: true, GlobalMax: 1, RemoteMax: 1, WriteMax: 1, Window: time.Minute, Storage: storage}

	first := newLimitedApp(cfg)
	second := newLimitedApp(cfg)

	assert.Equal(t, http.StatusOK, send(t, first, http.MethodPost, "/v1/data-sources/7/query").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, send(t, second, http.MethodPost, "/v1/data-sources/7/query").StatusCode)
}

func TestTierSelection(t *testing.T) {
	t.Parallel()

	assert.True(t, isRemotePath("/v1/data-sources/test"))
	assert.True(t, isRemotePath("/v1/data-sources/abc/schema/refresh"))
	assert.True(t, isRemotePath("/v1/data-sources/abc/query/"))
	assert.False(t, isRemotePath("/v1/data-sources/abc"))
	assert.True(t, isWriteMethod(fiber.MethodPatch))
	assert.False(t, isWriteMethod(fiber.MethodGet))
	assert.True(t, isProbePath("/ready"))
}
