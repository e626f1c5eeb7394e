// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_MarshalJSON(t *testing.T) {
	length := int64(50)

	relational := Schema{
		Kind:     SchemaKindRelational,
		Database: "app",
		Schema:   "public",
		Tables: []Table{{
			Name:    "users",
			Columns: []Column{{Name: "name", Type: "character varying", Length: &length, Nullable: true}},
		}},
	}

	out, err := json.Marshal(relational)
	require.NoError(t, err)
	assert.JSONEq(t, `{"database":"app","schema":"public","tables":[{"name":"users","columns":[{"name":"name","type":"character varying","length":50,"nullable":true}]}]}`, string(out))

	out, err = json.Marshal(Schema{Kind: SchemaKindRelational, Database: "shop"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"database":"shop","tables":[]}`, string(out))

	out, err = json.Marshal(Schema{Kind: SchemaKindDocument, Database: "shop"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"database":"shop","collections":[]}`, string(out))
}

func TestSchema_UnmarshalJSONRestoresKind(t *testing.T) {
	var doc Schema
	require.NoError(t, json.Unmarshal([]byte(`{"database":"shop","collections":[{"name":"orders","fields":[],"document_count":3}]}`), &doc))

	assert.Equal(t, SchemaKindDocument, doc.Kind)
	require.Len(t, doc.Collections, 1)
	assert.Equal(t, int64(3), doc.Collections[0].DocumentCount)

	var rel Schema
	require.NoError(t, json.Unmarshal([]byte(`{"database":"app","schema":"public","tables":[]}`), &rel))

	assert.Equal(t, SchemaKindRelational, rel.Kind)
	assert.Equal(t, "public", rel.Schema)
}

func TestNewResult(t *testing.T) {
	empty := NewResult(nil, nil)

	assert.NotNil(t, empty.Rows)
	assert.NotNil(t, empty.Fields)
	assert.Equal(t, 0, empty.RowCount)

	r := NewResult([]map[string]any{{"a": 1}, {"a": 2}}, []Field{{Name: "a", Type: "number"}})
	assert.Equal(t, 2, r.RowCount)
}

func TestDescriptor(t *testing.T) {
	assert.Equal(t, 5432, Descriptor{}.PortOr(5432))
	assert.Equal(t, 6543, Descriptor{Port: 6543}.PortOr(5432))
	assert.Equal(t, []string{"type", "host", "database"}, Descriptor{}.MissingFields())
	assert.Empty(t, Descriptor{Type: EngineMySQL, Host: "h", Database: "d"}.MissingFields())
	assert.True(t, EngineElasticsearch.IsDeclared())
	assert.False(t, EngineType("cassandra").IsDeclared())
}
