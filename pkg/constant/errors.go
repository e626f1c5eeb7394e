// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import (
	"errors"
)

// List of errors that can be returned.
// Standardized error codes are mapped to typed errors by pkg.ValidateBusinessError.
var (
	ErrMissingRequiredFields        = errors.New("DGG-0001")
	ErrInvalidPathParameter         = errors.New("DGG-0002")
	ErrEntityNotFound               = errors.New("DGG-0003")
	ErrUnexpectedFieldsInTheRequest = errors.New("DGG-0004")
	ErrMissingFieldsInRequest       = errors.New("DGG-0005")
	ErrBadRequest                   = errors.New("DGG-0006")
	ErrInternalServer               = errors.New("DGG-0007")
	ErrInvalidQueryParameter        = errors.New("DGG-0008")
	ErrPaginationLimitExceeded      = errors.New("DGG-0009")
	ErrUnsupportedEngine            = errors.New("DGG-0010")
	ErrInvalidEngineType            = errors.New("DGG-0011")
	ErrConnectionFailed             = errors.New("DGG-0012")
	ErrQueryFailed                  = errors.New("DGG-0013")
	ErrSchemaFailed                 = errors.New("DGG-0014")
	ErrUnsupportedOperation         = errors.New("DGG-0015")
	ErrInvalidDocumentQuery         = errors.New("DGG-0016")
	ErrConnectionTestFailed         = errors.New("DGG-0017")
	ErrDataSourceUnavailable        = errors.New("DGG-0018")
	ErrEmptyQuery                   = errors.New("DGG-0019")
	ErrRateLimitExceeded            = errors.New("DGG-0429")
)
