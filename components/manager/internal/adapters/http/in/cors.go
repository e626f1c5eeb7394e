// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORSConfig holds the comma-separated CORS lists loaded from the environment.
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// CORSMiddleware configures CORS from explicit lists. Malformed origins and empty
// list segments are dropped first, since fiber panics on them.
// Probe endpoints never receive CORS headers.
func CORSMiddleware(cfg CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: joinClean(cfg.AllowedOrigins, func(origin string) bool {
			return origin == "*" || isValidOrigin(origin)
		}),
		AllowMethods: joinClean(cfg.AllowedMethods, nil),
		AllowHeaders: joinClean(cfg.AllowedHeaders, nil),
		Next: func(c *fiber.Ctx) bool {
			return isProbePath(c.Path())
		},
	})
}

// joinClean trims every segment of a comma-separated list and keeps the
// non-empty ones accepted by keep (all of them when keep is nil).
func joinClean(input string, keep func(string) bool) string {
	var clean []string

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if keep != nil && !keep(part) {
			continue
		}

		clean = append(clean, part)
	}

	return strings.Join(clean, ",")
}

// isValidOrigin accepts scheme://host[:port] and nothing else.
func isValidOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false
	}

	if parsed.Path != "" && parsed.Path != "/" {
		return false
	}

	return parsed.RawQuery == "" && parsed.Fragment == "" && parsed.User == nil
}
