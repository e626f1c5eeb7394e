// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import "encoding/json"

// SchemaKind tells the relational and document shapes of a Schema apart.
type SchemaKind string

const (
	SchemaKindRelational SchemaKind = "relational"
	SchemaKindDocument   SchemaKind = "document"
)

// Schema is the normalized structural description of a data source.
// Relational engines fill Tables, the document engine fills Collections.
//
// swagger:model Schema
// @Description Schema lists tables and columns, or collections and inferred fields.
type Schema struct {
	Kind        SchemaKind   `json:"-"`
	Database    string       `json:"database" example:"analytics"`
	Schema      string       `json:"schema,omitempty" example:"public"`
	Tables      []Table      `json:"tables,omitempty"`
	Collections []Collection `json:"collections,omitempty"`
} // @name Schema

// Table is a relational table and its columns in ordinal order.
type Table struct {
	Name    string   `json:"name" example:"customers"`
	Columns []Column `json:"columns"`
}

// Column is one declared relational column.
type Column struct {
	Name     string  `json:"name" example:"name"`
	Type     string  `json:"type" example:"character varying"`
	Length   *int64  `json:"length,omitempty" example:"50"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default,omitempty"`
}

// Collection is a document collection with fields inferred from a sample.
type Collection struct {
	Name          string            `json:"name" example:"orders"`
	Fields        []CollectionField `json:"fields"`
	DocumentCount int64             `json:"document_count" example:"42"`
}

// CollectionField is an inferred field and the distinct value types seen for it.
type CollectionField struct {
	Name  string   `json:"name" example:"total"`
	Types []string `json:"types"`
}

type relationalSchemaJSON struct {
	Database string  `json:"database"`
	Schema   string  `json:"schema,omitempty"`
	Tables   []Table `json:"tables"`
}

type documentSchemaJSON struct {
	Database    string       `json:"database"`
	Collections []Collection `json:"collections"`
}

// MarshalJSON emits the relational or the document shape. Empty lists are kept as [].
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.Kind == SchemaKindDocument {
		collections := s.Collections
		if collections == nil {
			collections = []Collection{}
		}

		return json.Marshal(documentSchemaJSON{Database: s.Database, Collections: collections})
	}

	tables := s.Tables
	if tables == nil {
		tables = []Table{}
	}

	return json.Marshal(relationalSchemaJSON{Database: s.Database, Schema: s.Schema, Tables: tables})
}

// UnmarshalJSON restores the Kind from the shape that was stored.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var aux struct {
		Database    string        `json:"database"`
		Schema      string        `json:"schema"`
		Tables      []Table       `json:"tables"`
		Collections *[]Collection `json:"collections"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.Database = aux.Database
	s.Schema = aux.Schema
	s.Tables = aux.Tables
	s.Collections = nil
	s.Kind = SchemaKindRelational

	if aux.Collections != nil {
		s.Kind = SchemaKindDocument
		s.Collections = *aux.Collections
	}

	return nil
}
