// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/Masterminds/squirrel"
	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Dialect captures what differs between relational engines served through database/sql.
type Dialect interface {
	// DriverName is the database/sql driver registered for the engine.
	DriverName() string
	// Label is the human-readable engine name reported by connection tests.
	Label() string
	// DSN builds the connection string for a descriptor.
	DSN(descriptor model.Descriptor, connectTimeout time.Duration) (string, error)
	// RedactDSN masks credentials in a DSN produced by DSN.
	RedactDSN(dsn string) string
	// Placeholder is the bind-variable format of the engine.
	Placeholder() squirrel.PlaceholderFormat
	// TableSchema is the information_schema.table_schema value to introspect.
	TableSchema(descriptor model.Descriptor) string
	// ReportedSchema is the schema name echoed in the description, empty when the engine has none.
	ReportedSchema(descriptor model.Descriptor) string
}

// OpenFunc opens a database handle. sql.Open by default.
type OpenFunc func(driverName, dsn string) (*sql.DB, error)

// Option customizes an Engine.
type Option func(*Engine)

// WithOpener replaces the function used to open database handles.
func WithOpener(open OpenFunc) Option {
	return func(e *Engine) {
		if open != nil {
			e.open = open
		}
	}
}

// Engine serves a relational dialect. Every call opens its own single-connection
// handle and closes it before returning.
type Engine struct {
	dialect Dialect
	open    OpenFunc
}

// NewEngine builds an Engine for the dialect.
func NewEngine(dialect Dialect, opts ...Option) *Engine {
	e := &Engine{
		dialect: dialect,
		open:    sql.Open,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Label returns the engine label of the dialect.
func (e *Engine) Label() string {
	return e.dialect.Label()
}

// connect opens a handle and pings it, so connection faults surface here as ConnectionError.
func (e *Engine) connect(ctx context.Context, descriptor model.Descriptor) (*sql.DB, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "sqldb.connect")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.engine", e.dialect.Label()),
		attribute.String("app.request.host", descriptor.Host),
		attribute.String("app.request.database", descriptor.Database),
	)

	dsn, err := e.dialect.DSN(descriptor, connectTimeout(ctx))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build connection string", err)

		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	logger.Debugf("Opening %s connection to %s", e.dialect.Label(), e.dialect.RedactDSN(dsn))

	db, err := e.open(e.dialect.DriverName(), dsn)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to open connection", err)

		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		pkg.CloseQuietly(logger, e.dialect.Label()+" connection", db.Close)

		libOpentelemetry.HandleSpanError(&span, "Failed to ping database", err)

		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	return db, nil
}

// connectTimeout derives the driver dial timeout from the context deadline.
func connectTimeout(ctx context.Context) time.Duration {
	timeout := constant.ConnectionTimeout

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	return timeout
}

// Probe runs the liveness query and reports the server time.
func (e *Engine) Probe(ctx context.Context, descriptor model.Descriptor) (*model.ConnectionInfo, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	db, err := e.connect(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	defer pkg.CloseQuietly(logger, e.dialect.Label()+" connection", db.Close)

	var serverTime time.Time
	if err := db.QueryRowContext(ctx, constant.RelationalProbeQuery).Scan(&serverTime); err != nil {
		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	return &model.ConnectionInfo{
		Timestamp:    &serverTime,
		DatabaseType: e.dialect.Label(),
	}, nil
}

// Run executes the SQL text with its positional parameters bound by the driver.
func (e *Engine) Run(ctx context.Context, descriptor model.Descriptor, query model.Query) (*model.Result, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	db, err := e.connect(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	defer pkg.CloseQuietly(logger, e.dialect.Label()+" connection", db.Close)

	ctx, span := tracer.Start(ctx, "sqldb.run")
	defer span.End()

	rows, err := db.QueryContext(ctx, query.SQL, BindParams(query.Params)...)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to execute query", err)

		return nil, pkg.NewQueryError(descriptor.Type.String(), err)
	}
	defer pkg.CloseQuietly(logger, "result set", rows.Close)

	result, err := ScanRows(rows, logger)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read rows", err)

		return nil, pkg.NewQueryError(descriptor.Type.String(), err)
	}

	return result, nil
}

// BindParams converts JSON-decoded parameters into driver values. Integral
// numbers become int64 so they bind to integer columns.
func BindParams(params []any) []any {
	bound := make([]any, len(params))

	for i, p := range params {
		switch v := p.(type) {
		case float64:
			if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
				bound[i] = int64(v)
			} else {
				bound[i] = v
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				bound[i] = n
			} else if f, err := v.Float64(); err == nil {
				bound[i] = f
			} else {
				bound[i] = v.String()
			}
		case map[string]any, []any:
			encoded, err := json.Marshal(v)
			if err != nil {
				bound[i] = fmt.Sprint(v)
			} else {
				bound[i] = string(encoded)
			}
		default:
			bound[i] = v
		}
	}

	return bound
}
