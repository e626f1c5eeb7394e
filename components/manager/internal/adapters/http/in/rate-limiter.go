// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"strconv"
	"strings"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig holds the limits of the three rate limit tiers:
//   - GlobalMax: reads served from the record store or cache
//   - RemoteMax: requests that open a connection to an external database
//   - WriteMax: other POST, PATCH and DELETE requests
//
// Storage is optional; when set, counters are shared between replicas.
type RateLimitConfig struct {
	Enabled   bool
	GlobalMax int
	RemoteMax int
	WriteMax  int
	Window    time.Duration
	Storage   RateLimitStorage
}

var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/version": true,
}

func isProbePath(path string) bool {
	return probePaths[path]
}

// remoteSuffixes are the data source routes that reach the external database.
var remoteSuffixes = []string{"/test", "/query", "/schema", "/schema/refresh"}

func isRemotePath(path string) bool {
	path = strings.TrimSuffix(path, "/")

	for _, suffix := range remoteSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}

	return false
}

func isWriteMethod(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	default:
		return false
	}
}

func newTierLimiter(tier string, max int, cfg RateLimitConfig, limitReached fiber.Handler) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return tier + ":" + c.IP()
		},
		LimitReached: limitReached,
	})
}

// RateLimiterMiddleware picks a tier per request and counts it there only,
// so exhausting one tier leaves the others untouched. Probe endpoints bypass it.
func RateLimiterMiddleware(cfg RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	limitReached := newRateLimitReachedHandler(cfg.Window)

	global := newTierLimiter("global", cfg.GlobalMax, cfg, limitReached)
	remote := newTierLimiter("remote", cfg.RemoteMax, cfg, limitReached)
	write := newTierLimiter("write", cfg.WriteMax, cfg, limitReached)

	return func(c *fiber.Ctx) error {
		path := c.Path()

		switch {
		case isProbePath(path):
			return c.Next()
		case isRemotePath(path):
			return remote(c)
		case isWriteMethod(c.Method()):
			return write(c)
		default:
			return global(c)
		}
	}
}

type rateLimitErrorResponse struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func newRateLimitReachedHandler(window time.Duration) fiber.Handler {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *fiber.Ctx) error {
		if c.GetRespHeader(fiber.HeaderRetryAfter) == "" {
			c.Set(fiber.HeaderRetryAfter, retryAfter)
		}

		return c.Status(fiber.StatusTooManyRequests).JSON(rateLimitErrorResponse{
			Code:    constant.ErrRateLimitExceeded.Error(),
			Title:   "Too Many Requests",
			Message: "Rate limit exceeded. Please retry after " + retryAfter + " seconds.",
		})
	}
}
