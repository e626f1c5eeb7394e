// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSApp(cfg CORSConfig, paths ...string) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(CORSMiddleware(cfg))

	for _, path := range paths {
		app.Get(path, func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})
	}

	return app
}

func TestCORSMiddleware_Origins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		allowedOrigins string
		requestOrigin  string
		expectedOrigin string
	}{
		{
			name:           "Success - listed origin",
			allowedOrigins: "https://app.example.com,https://admin.example.com",
			requestOrigin:  "https://admin.example.com",
			expectedOrigin: "https://admin.example.com",
		},
		{
			name:           "Success - malformed entries are ignored",
			allowedOrigins: ",://broken, https://app.example.com ,https://x.example.com/path,",
			requestOrigin:  "https://app.example.com",
			expectedOrigin: "https://app.example.com",
		},
		{
			name:           "Error - unlisted origin",
			allowedOrigins: "https://app.example.com",
			requestOrigin:  "https://evil.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newCORSApp(CORSConfig{
				AllowedOrigins: tt.allowedOrigins,
				AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
				AllowedHeaders: "Origin,Content-Type,Accept,X-Request-Id",
			}, "/v1/data-sources")

			req := httptest.NewRequest(http.MethodGet, "/v1/data-sources", nil)
			req.Header.Set("Origin", tt.requestOrigin)

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.expectedOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	app := newCORSApp(CORSConfig{
		AllowedOrigins: "https://app.example.com",
		AllowedMethods: "GET,,POST, DELETE",
		AllowedHeaders: "Origin,Content-Type",
	}, "/v1/data-sources")

	req := httptest.NewRequest(http.MethodOptions, "/v1/data-sources", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "GET,POST,DELETE", resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestCORSMiddleware_SkipsProbePaths(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/health", "/ready", "/version"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			app := newCORSApp(CORSConfig{AllowedOrigins: "https://app.example.com"}, path)

			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Origin", "https://app.example.com")

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestJoinClean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a,b", joinClean(" a ,, b,", nil))
	assert.Equal(t, "", joinClean(",,", nil))
	assert.Equal(t, "*", joinClean("*,://bad", func(o string) bool { return o == "*" || isValidOrigin(o) }))
}
