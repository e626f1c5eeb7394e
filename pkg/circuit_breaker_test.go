// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"errors"
	"testing"

	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerManager_GetOrCreate(t *testing.T) {
	cbm := NewCircuitBreakerManager(&log.NoneLogger{})

	first := cbm.GetOrCreate("ds-1")
	second := cbm.GetOrCreate("ds-1")
	other := cbm.GetOrCreate("ds-2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, "not_initialized", cbm.GetState("ds-3"))
	assert.Equal(t, constant.CircuitBreakerStateClosed, cbm.GetState("ds-1"))
}

func TestCircuitBreakerManager_OpensOnConnectionFaults(t *testing.T) {
	cbm := NewCircuitBreakerManager(&log.NoneLogger{})

	connErr := NewConnectionError("postgresql", errors.New("connection refused"))

	for i := uint32(0); i < constant.CircuitBreakerThreshold; i++ {
		_, err := cbm.Execute("ds-1", func() (any, error) {
			return nil, connErr
		})
		assert.ErrorIs(t, err, connErr.Err)
	}

	assert.Equal(t, constant.CircuitBreakerStateOpen, cbm.GetState("ds-1"))
	assert.False(t, cbm.IsHealthy("ds-1"))

	called := false
	_, err := cbm.Execute("ds-1", func() (any, error) {
		called = true
		return nil, nil
	})

	assert.False(t, called)

	var unavailable ServiceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, constant.ErrDataSourceUnavailable.Error(), unavailable.Code)

	cbm.Reset("ds-1")
	assert.True(t, cbm.IsHealthy("ds-1"))
}

func TestCircuitBreakerManager_QueryErrorsDoNotTrip(t *testing.T) {
	cbm := NewCircuitBreakerManager(&log.NoneLogger{})

	queryErr := NewQueryError("mysql", errors.New("You have an error in your SQL syntax"))

	for i := uint32(0); i < constant.CircuitBreakerThreshold*2; i++ {
		_, err := cbm.Execute("ds-1", func() (any, error) {
			return nil, queryErr
		})
		assert.Equal(t, queryErr, err)
	}

	assert.Equal(t, constant.CircuitBreakerStateClosed, cbm.GetState("ds-1"))
}

func TestIsBreakerNeutral(t *testing.T) {
	connErr := NewConnectionError("postgresql", errors.New("refused"))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: true},
		{name: "query error", err: NewQueryError("postgresql", errors.New("syntax")), want: true},
		{name: "schema error", err: NewSchemaError("postgresql", errors.New("denied")), want: true},
		{name: "unsupported engine", err: NewUnsupportedEngineError("oracle"), want: true},
		{name: "validation", err: ValidationError{Code: "DGG-0019"}, want: true},
		{name: "connection error", err: connErr, want: false},
		{name: "query error wrapping connection error", err: NewQueryError("postgresql", connErr), want: false},
		{name: "unknown", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBreakerNeutral(tt.err))
		})
	}
}
