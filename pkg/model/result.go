// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// Field describes one result column: its name and the engine-reported type tag.
// Type tags are engine specific and not unified across engines.
type Field struct {
	Name string `json:"name" example:"id"`
	Type string `json:"type" example:"INT4"`
}

// Result is the normalized tabular output of a query, whatever the engine.
//
// swagger:model Result
// @Description Result holds the rows, row count and field metadata of a query.
type Result struct {
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"rowCount" example:"1"`
	Fields   []Field          `json:"fields"`
} // @name Result

// NewResult builds a Result whose row count always matches its rows.
func NewResult(rows []map[string]any, fields []Field) *Result {
	if rows == nil {
		rows = []map[string]any{}
	}

	if fields == nil {
		fields = []Field{}
	}

	return &Result{
		Rows:     rows,
		RowCount: len(rows),
		Fields:   fields,
	}
}
