// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConvertBsonValue(t *testing.T) {
	oid := primitive.NewObjectID()
	id := uuid.New()
	at := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{name: "object id as hex", value: oid, want: oid.Hex()},
		{name: "date time as time", value: primitive.NewDateTimeFromTime(at), want: at},
		{name: "uuid binary as string", value: primitive.Binary{Subtype: 4, Data: id[:]}, want: id.String()},
		{name: "other binary as hex", value: primitive.Binary{Data: []byte{0xca, 0xfe}}, want: "cafe"},
		{name: "nested ordered document", value: bson.D{{Key: "k", Value: oid}}, want: map[string]any{"k": oid.Hex()}},
		{name: "nested map", value: bson.M{"k": bson.A{int32(1)}}, want: map[string]any{"k": []any{int32(1)}}},
		{name: "null", value: primitive.Null{}, want: nil},
		{name: "scalar untouched", value: "text", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertBsonValue(tt.value))
		})
	}
}

func TestTypeTag(t *testing.T) {
	assert.Equal(t, "string", typeTag("x"))
	assert.Equal(t, "number", typeTag(int32(1)))
	assert.Equal(t, "number", typeTag(1.5))
	assert.Equal(t, "boolean", typeTag(false))
	assert.Equal(t, "object", typeTag(bson.D{}))
	assert.Equal(t, "array", typeTag(bson.A{}))
	assert.Equal(t, "null", typeTag(nil))
	assert.Equal(t, "objectId", typeTag(primitive.NewObjectID()))
	assert.Equal(t, "date", typeTag(primitive.DateTime(0)))
	assert.Equal(t, "binary", typeTag(primitive.Binary{}))
	assert.Equal(t, "timestamp", typeTag(primitive.Timestamp{}))
	assert.Equal(t, "unknown", typeTag(primitive.Regex{}))
}
