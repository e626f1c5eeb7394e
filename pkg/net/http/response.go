// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"github.com/LerianStudio/datagage/pkg"

	commonsHTTP "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/gofiber/fiber/v2"
)

// BadRequest sends an HTTP 400 Bad Request response with a custom body.
func BadRequest(c *fiber.Ctx, s any) error {
	return commonsHTTP.BadRequest(c, s)
}

// NotFound sends an HTTP 404 Not Found response with a custom code, title and message.
func NotFound(c *fiber.Ctx, code, title, message string) error {
	return commonsHTTP.NotFound(c, code, title, message)
}

// UnprocessableEntity sends an HTTP 422 Unprocessable Entity response with a custom code, title and message.
func UnprocessableEntity(c *fiber.Ctx, code, title, message string) error {
	return commonsHTTP.UnprocessableEntity(c, code, title, message)
}

// InternalServerError sends an HTTP 500 Internal Server Error response.
func InternalServerError(c *fiber.Ctx, code, title, message string) error {
	return commonsHTTP.InternalServerError(c, code, title, message)
}

// BadGateway sends an HTTP 502 response for a data source that could not be reached.
func BadGateway(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"code":    code,
		"title":   title,
		"message": message,
	})
}

// ServiceUnavailable sends an HTTP 503 response, e.g. while a data source breaker is open.
func ServiceUnavailable(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"code":    code,
		"title":   title,
		"message": message,
	})
}

// JSONResponseError sends a JSON formatted error response with a custom error struct.
// pkg.ResponseError carries the HTTP status in Code, unlike the lib-commons Response type.
func JSONResponseError(c *fiber.Ctx, err pkg.ResponseError) error {
	return c.Status(err.Code).JSON(err)
}
