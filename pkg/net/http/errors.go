// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"github.com/LerianStudio/datagage/pkg"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// WithError returns an error with the given status code and message.
// Engine errors are matched anywhere in the chain, so a QueryError wrapping a
// ConnectionError still answers as a gateway failure.
func WithError(c *fiber.Ctx, err error) error {
	var connErr pkg.ConnectionError
	if errors.As(err, &connErr) {
		return BadGateway(c, connErr.Code, connErr.Title, connErr.Message)
	}

	switch e := err.(type) {
	case pkg.EntityNotFoundError:
		return NotFound(c, e.Code, e.Title, e.Message)
	case pkg.ValidationError:
		return BadRequest(c, pkg.ValidationKnownFieldsError{
			Code:    e.Code,
			Title:   e.Title,
			Message: e.Message,
			Fields:  nil,
		})
	case pkg.UnprocessableOperationError:
		return UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.QueryError:
		return UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.SchemaError:
		return UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.UnsupportedEngineError:
		return UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.ServiceUnavailableError:
		return ServiceUnavailable(c, e.Code, e.Title, e.Message)
	case pkg.ValidationKnownFieldsError, pkg.ValidationUnknownFieldsError:
		return BadRequest(c, e)
	case pkg.ResponseError:
		var rErr pkg.ResponseError

		_ = errors.As(err, &rErr)

		return JSONResponseError(c, rErr)
	default:
		var iErr pkg.InternalServerError

		_ = errors.As(pkg.ValidateInternalError(err, ""), &iErr)

		return InternalServerError(c, iErr.Code, iErr.Title, iErr.Message)
	}
}
