// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/Masterminds/squirrel"
	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Introspect lists the base tables of the declared schema in name order and,
// one query per table, their columns in ordinal order.
func (e *Engine) Introspect(ctx context.Context, descriptor model.Descriptor) (*model.Schema, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	db, err := e.connect(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	defer pkg.CloseQuietly(logger, e.dialect.Label()+" connection", db.Close)

	ctx, span := tracer.Start(ctx, "sqldb.introspect")
	defer span.End()

	schemaName := e.dialect.TableSchema(descriptor)

	span.SetAttributes(attribute.String("app.request.schema", schemaName))

	tableNames, err := e.queryTables(ctx, db, schemaName)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list tables", err)

		return nil, pkg.NewSchemaError(descriptor.Type.String(), err)
	}

	tables := make([]model.Table, 0, len(tableNames))

	for _, name := range tableNames {
		columns, err := e.queryColumns(ctx, db, schemaName, name)
		if err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to list columns", err)

			return nil, pkg.NewSchemaError(descriptor.Type.String(), err)
		}

		tables = append(tables, model.Table{Name: name, Columns: columns})
	}

	logger.Infof("Introspected %d tables in %s schema %s", len(tables), e.dialect.Label(), schemaName)

	return &model.Schema{
		Kind:     model.SchemaKindRelational,
		Database: descriptor.Database,
		Schema:   e.dialect.ReportedSchema(descriptor),
		Tables:   tables,
	}, nil
}

// TablesQuery builds the base-table listing for a schema.
func TablesQuery(format squirrel.PlaceholderFormat, schemaName string) (string, []any, error) {
	return squirrel.
		Select("table_name").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": schemaName}).
		Where(squirrel.Eq{"table_type": constant.InformationSchemaBaseTable}).
		OrderBy("table_name").
		PlaceholderFormat(format).
		ToSql()
}

// ColumnsQuery builds the column listing for one table.
func ColumnsQuery(format squirrel.PlaceholderFormat, schemaName, tableName string) (string, []any, error) {
	return squirrel.
		Select("column_name", "data_type", "character_maximum_length", "is_nullable", "column_default").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_schema": schemaName}).
		Where(squirrel.Eq{"table_name": tableName}).
		OrderBy("ordinal_position").
		PlaceholderFormat(format).
		ToSql()
}

func (e *Engine) queryTables(ctx context.Context, db *sql.DB, schemaName string) ([]string, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	query, args, err := TablesQuery(e.dialect.Placeholder(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("error building tables query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout querying tables: %w", err)
		}

		return nil, fmt.Errorf("error querying tables: %w", err)
	}
	defer pkg.CloseQuietly(logger, "tables result set", rows.Close)

	names := make([]string, 0)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning table name: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	return names, nil
}

func (e *Engine) queryColumns(ctx context.Context, db *sql.DB, schemaName, tableName string) ([]model.Column, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	query, args, err := ColumnsQuery(e.dialect.Placeholder(), schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("error building columns query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout querying columns for table %s: %w", tableName, err)
		}

		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	defer pkg.CloseQuietly(logger, "columns result set", rows.Close)

	columns := make([]model.Column, 0)

	for rows.Next() {
		var (
			name         string
			dataType     string
			length       sql.NullInt64
			isNullable   string
			defaultValue sql.NullString
		)

		if err := rows.Scan(&name, &dataType, &length, &isNullable, &defaultValue); err != nil {
			return nil, fmt.Errorf("error scanning column of table %s: %w", tableName, err)
		}

		column := model.Column{
			Name:     name,
			Type:     dataType,
			Nullable: strings.EqualFold(isNullable, "YES"),
		}

		if length.Valid {
			l := length.Int64
			column.Length = &l
		}

		if defaultValue.Valid {
			d := defaultValue.String
			column.Default = &d
		}

		columns = append(columns, column)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns of table %s: %w", tableName, err)
	}

	return columns, nil
}
