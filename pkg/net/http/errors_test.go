// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithError(t *testing.T) {
	t.Parallel()

	connErr := pkg.NewConnectionError(constant.EnginePostgreSQL, errors.New("dial tcp 10.0.0.1:5432: connect: connection refused"))

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "entity not found",
			err:          pkg.ValidateBusinessError(constant.ErrEntityNotFound, constant.MongoCollectionDataSource),
			expectedCode: stdhttp.StatusNotFound,
			expectedBody: constant.ErrEntityNotFound.Error(),
		},
		{
			name:         "validation error",
			err:          pkg.ValidateBusinessError(constant.ErrConnectionTestFailed, constant.MongoCollectionDataSource, "timeout"),
			expectedCode: stdhttp.StatusBadRequest,
			expectedBody: constant.ErrConnectionTestFailed.Error(),
		},
		{
			name:         "connection error",
			err:          connErr,
			expectedCode: stdhttp.StatusBadGateway,
			expectedBody: constant.ErrConnectionFailed.Error(),
		},
		{
			name:         "query error wrapping a connection error",
			err:          pkg.NewQueryError(constant.EnginePostgreSQL, connErr),
			expectedCode: stdhttp.StatusBadGateway,
			expectedBody: constant.ErrConnectionFailed.Error(),
		},
		{
			name:         "query error",
			err:          pkg.NewQueryError(constant.EngineMySQL, errors.New("syntax error near FROM")),
			expectedCode: stdhttp.StatusUnprocessableEntity,
			expectedBody: constant.ErrQueryFailed.Error(),
		},
		{
			name:         "schema error",
			err:          pkg.NewSchemaError(constant.EngineMongoDB, errors.New("not authorized")),
			expectedCode: stdhttp.StatusUnprocessableEntity,
			expectedBody: constant.ErrSchemaFailed.Error(),
		},
		{
			name:         "unsupported engine",
			err:          pkg.NewUnsupportedEngineError(constant.EngineOracle),
			expectedCode: stdhttp.StatusUnprocessableEntity,
			expectedBody: constant.ErrUnsupportedEngine.Error(),
		},
		{
			name:         "breaker open",
			err:          pkg.ValidateBusinessError(constant.ErrDataSourceUnavailable, constant.MongoCollectionDataSource, "ds-1"),
			expectedCode: stdhttp.StatusServiceUnavailable,
			expectedBody: constant.ErrDataSourceUnavailable.Error(),
		},
		{
			name:         "response error",
			err:          pkg.ResponseError{Code: stdhttp.StatusTooManyRequests, Title: "Too Many Requests", Message: "slow down"},
			expectedCode: stdhttp.StatusTooManyRequests,
			expectedBody: "slow down",
		},
		{
			name:         "unknown error",
			err:          errors.New("boom"),
			expectedCode: stdhttp.StatusInternalServerError,
			expectedBody: constant.ErrInternalServer.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			app.Get("/test", func(c *fiber.Ctx) error {
				return WithError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/test", nil))
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			raw, _ := json.Marshal(body)
			assert.Contains(t, string(raw), tt.expectedBody)
		})
	}
}
