// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
)

// ScanRows reads every row into a field-name keyed map. Field types are the
// driver-reported database type names.
func ScanRows(rows *sql.Rows, logger log.Logger) (*model.Result, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("error getting column types: %w", err)
	}

	fields := make([]model.Field, len(columnTypes))
	for i, ct := range columnTypes {
		fields[i] = model.Field{Name: ct.Name(), Type: ct.DatabaseTypeName()}
	}

	values := make([]any, len(columnTypes))
	pointers := make([]any, len(columnTypes))

	for i := range values {
		pointers[i] = &values[i]
	}

	result := make([]map[string]any, 0)

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		row := make(map[string]any, len(fields))
		for i, field := range fields {
			row[field.Name] = normalizeValue(values[i], logger)
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return model.NewResult(result, fields), nil
}

// normalizeValue decodes byte values. JSON objects and arrays (json/jsonb columns)
// become maps and slices, anything else becomes a string.
func normalizeValue(value any, logger log.Logger) any {
	byteData, ok := value.([]byte)
	if !ok {
		return value
	}

	if len(byteData) > 0 && (byteData[0] == '{' || byteData[0] == '[') {
		var decoded any
		if err := json.Unmarshal(byteData, &decoded); err == nil {
			return decoded
		}

		logger.Debugf("Value looked like JSON but failed to decode, returning it as text")
	}

	return string(byteData)
}
