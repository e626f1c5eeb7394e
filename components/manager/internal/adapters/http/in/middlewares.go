// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// UUIDPathParameter is the path parameter carrying a data source id.
const UUIDPathParameter = "id"

// SecurityHeaders sets the standard browser hardening headers on every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		c.Set(fiber.HeaderXFrameOptions, "DENY")
		c.Set(fiber.HeaderXXSSProtection, "0")

		return c.Next()
	}
}

// RecoverMiddleware turns a handler panic into a 500 response.
func RecoverMiddleware() fiber.Handler {
	return recover.New()
}

// ParsePathParametersUUID validates the id path parameter and stores the parsed
// uuid.UUID in c.Locals(UUIDPathParameter).
func ParsePathParametersUUID(c *fiber.Ctx) error {
	parsed, err := uuid.Parse(c.Params(UUIDPathParameter))
	if err != nil {
		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidPathParameter, constant.MongoCollectionDataSource, UUIDPathParameter))
	}

	c.Locals(UUIDPathParameter, parsed)

	return c.Next()
}
