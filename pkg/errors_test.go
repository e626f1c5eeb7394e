// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"errors"
	"testing"

	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineErrors(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")

	connErr := NewConnectionError("postgresql", cause)
	assert.Equal(t, cause.Error(), connErr.Error())
	assert.Equal(t, constant.ErrConnectionFailed.Error(), connErr.Code)
	assert.ErrorIs(t, connErr, cause)

	queryErr := NewQueryError("postgresql", connErr)
	assert.Equal(t, cause.Error(), queryErr.Error())

	var unwrapped ConnectionError
	require.ErrorAs(t, queryErr, &unwrapped)
	assert.Equal(t, "postgresql", unwrapped.EngineType)

	schemaErr := NewSchemaError("mysql", cause)
	assert.Equal(t, constant.ErrSchemaFailed.Error(), schemaErr.Code)
	assert.ErrorIs(t, schemaErr, cause)

	op := NewUnsupportedOperationError("mongodb", "update")
	assert.Equal(t, "Unsupported operation: update", op.Error())
	assert.Equal(t, constant.ErrUnsupportedOperation.Error(), op.Code)
	assert.Nil(t, op.Unwrap())

	unsupported := NewUnsupportedEngineError("snowflake")
	assert.Equal(t, "Unsupported database type: snowflake", unsupported.Error())
	assert.Equal(t, constant.ErrUnsupportedEngine.Error(), unsupported.Code)
}

func TestEngineErrors_EmptyMessageFallsBackToCause(t *testing.T) {
	err := QueryError{Err: errors.New("boom")}

	assert.Equal(t, "boom", err.Error())
}

func TestValidateBusinessError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		args  []any
		check func(t *testing.T, err error)
	}{
		{
			name: "entity not found",
			err:  constant.ErrEntityNotFound,
			check: func(t *testing.T, err error) {
				var target EntityNotFoundError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "DGG-0003", target.Code)
			},
		},
		{
			name: "connection test failed carries the reason",
			err:  constant.ErrConnectionTestFailed,
			args: []any{"timeout"},
			check: func(t *testing.T, err error) {
				var target ValidationError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "Connection test failed: timeout", target.Message)
			},
		},
		{
			name: "data source unavailable",
			err:  constant.ErrDataSourceUnavailable,
			args: []any{"abc"},
			check: func(t *testing.T, err error) {
				var target ServiceUnavailableError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, constant.ErrDataSourceUnavailable.Error(), target.Code)
			},
		},
		{
			name: "unmapped error is returned unchanged",
			err:  errors.New("not mapped"),
			check: func(t *testing.T, err error) {
				assert.EqualError(t, err, "not mapped")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ValidateBusinessError(tt.err, constant.MongoCollectionDataSource, tt.args...))
		})
	}
}

func TestValidateBadRequestFieldsError(t *testing.T) {
	err := ValidateBadRequestFieldsError(nil, nil, "data_sources", map[string]any{"extra": "x"})

	var unknown ValidationUnknownFieldsError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, constant.ErrUnexpectedFieldsInTheRequest.Error(), unknown.Code)

	err = ValidateBadRequestFieldsError(map[string]string{"host": "host is a required field"}, nil, "data_sources", nil)

	var missing ValidationKnownFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, constant.ErrMissingFieldsInRequest.Error(), missing.Code)

	assert.Error(t, ValidateBadRequestFieldsError(nil, nil, "data_sources", nil))
}

func TestIsBusinessError(t *testing.T) {
	t.Parallel()

	connErr := NewConnectionError("mysql", errors.New("dial tcp 10.0.0.4:3306: i/o timeout"))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "not found", err: ValidateBusinessError(constant.ErrEntityNotFound, "data_sources"), want: true},
		{name: "unsupported engine", err: NewUnsupportedEngineError("dynamodb"), want: true},
		{name: "query rejected", err: NewQueryError("postgresql", errors.New("syntax error at or near \"SELEC\"")), want: true},
		{name: "connection fault", err: connErr, want: false},
		{name: "schema error over connection fault", err: NewSchemaError("mysql", connErr), want: false},
		{name: "breaker open", err: ValidateBusinessError(constant.ErrDataSourceUnavailable, "data_sources", "id"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsBusinessError(tt.err))
		})
	}
}
