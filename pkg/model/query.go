// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidDocumentQuery is returned when a document query cannot be decoded.
var ErrInvalidDocumentQuery = errors.New("invalid document query")

// Query is one query expression. Relational engines read SQL and Params;
// the document engine reads Document.
type Query struct {
	SQL      string
	Params   []any
	Document *DocumentQuery
}

// DocumentQuery is the structured operation run by the document engine.
// For the aggregate operation Filter carries the stage pipeline instead of a filter document.
//
// swagger:model DocumentQuery
// @Description DocumentQuery targets a collection with find, findOne or aggregate.
type DocumentQuery struct {
	Collection string         `json:"collection" example:"orders"`
	Operation  string         `json:"operation" example:"find"`
	Filter     any            `json:"filter,omitempty"`
	Projection map[string]any `json:"projection,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
} // @name DocumentQuery

// ParseDocumentQuery decodes a document query from its JSON text form.
func ParseDocumentQuery(text string) (*DocumentQuery, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var q DocumentQuery
	if err := decoder.Decode(&q); err != nil {
		return nil, errors.Join(ErrInvalidDocumentQuery, err)
	}

	if strings.TrimSpace(q.Collection) == "" {
		return nil, errors.Join(ErrInvalidDocumentQuery, errors.New("collection is required"))
	}

	return &q, nil
}

// ExecuteQueryInput is the request body of a query against a stored data source.
// Query is either SQL text, a JSON-encoded document query, or a document query object.
//
// swagger:model ExecuteQueryInput
// @Description ExecuteQueryInput carries a query expression and its positional parameters.
type ExecuteQueryInput struct {
	Query  json.RawMessage `json:"query" validate:"required" swaggertype:"object"`
	Params []any           `json:"params,omitempty"`
} // @name ExecuteQueryInput

// ToQuery resolves the raw query payload for the given engine.
func (in ExecuteQueryInput) ToQuery(engine EngineType) (Query, error) {
	raw := bytes.TrimSpace(in.Query)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Query{}, ErrEmptyQueryExpression
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return Query{}, errors.Join(ErrInvalidDocumentQuery, err)
		}

		if strings.TrimSpace(text) == "" {
			return Query{}, ErrEmptyQueryExpression
		}

		if engine != EngineMongoDB {
			return Query{SQL: text, Params: in.Params}, nil
		}

		doc, err := ParseDocumentQuery(text)
		if err != nil {
			return Query{}, err
		}

		return Query{Document: doc}, nil
	}

	if engine != EngineMongoDB {
		return Query{}, errors.Join(ErrInvalidDocumentQuery, errors.New("relational engines expect SQL text"))
	}

	doc, err := ParseDocumentQuery(string(raw))
	if err != nil {
		return Query{}, err
	}

	return Query{Document: doc}, nil
}

// ErrEmptyQueryExpression is returned when no query text or document was supplied.
var ErrEmptyQueryExpression = errors.New("empty query expression")
