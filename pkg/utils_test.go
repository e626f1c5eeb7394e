// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMapNumKinds(t *testing.T) {
	t.Parallel()

	result := GetMapNumKinds()

	for _, kind := range []reflect.Kind{reflect.Int, reflect.Int64, reflect.Float32, reflect.Float64} {
		assert.True(t, result[kind], "expected kind %v to be numeric", kind)
	}

	for _, kind := range []reflect.Kind{reflect.String, reflect.Bool, reflect.Map, reflect.Slice} {
		assert.False(t, result[kind], "expected kind %v to be non numeric", kind)
	}

	assert.Len(t, result, 7)
}

func TestIsNilOrEmpty(t *testing.T) {
	t.Parallel()

	value := func(s string) *string { return &s }

	tests := []struct {
		name     string
		input    *string
		expected bool
	}{
		{name: "nil pointer", input: nil, expected: true},
		{name: "empty string", input: value(""), expected: true},
		{name: "whitespace only", input: value("   "), expected: true},
		{name: "null literal", input: value(" null "), expected: true},
		{name: "nil literal", input: value("nil"), expected: true},
		{name: "engine name", input: value("postgresql"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsNilOrEmpty(tt.input))
		})
	}
}

func TestValidateServerAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "localhost:8080", ValidateServerAddress("localhost:8080"))
	assert.Equal(t, ":4005", ValidateServerAddress(":4005"))
	assert.Empty(t, ValidateServerAddress("localhost"))
	assert.Empty(t, ValidateServerAddress("localhost:http"))
}

func TestSafeInt64ToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, SafeInt64ToInt(42))
	assert.Equal(t, -7, SafeInt64ToInt(-7))
	assert.Equal(t, math.MaxInt, SafeInt64ToInt(math.MaxInt64))
}
