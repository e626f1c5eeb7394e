// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Options bounds the operations of a Service. A zero QueryTimeout or
// SchemaTimeout leaves the call bounded only by the caller's context.
type Options struct {
	ConnectionTimeout time.Duration
	QueryTimeout      time.Duration
	SchemaTimeout     time.Duration
}

// DefaultOptions returns the timeouts used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ConnectionTimeout: constant.ConnectionTimeout,
		QueryTimeout:      constant.DefaultQueryTimeout,
		SchemaTimeout:     constant.DefaultSchemaTimeout,
	}
}

// Service dispatches connection tests, queries and introspection to the engine
// selected by the descriptor type. It keeps no connection between calls.
//
//go:generate mockgen --destination=service.mock.go --package=database . DataSourceService
type DataSourceService interface {
	TestConnection(ctx context.Context, descriptor model.Descriptor) model.ConnectionResult
	ExecuteQuery(ctx context.Context, descriptor model.Descriptor, query model.Query) (*model.Result, error)
	GetSchemaInfo(ctx context.Context, descriptor model.Descriptor) (*model.Schema, error)
}

// Service is the default DataSourceService.
type Service struct {
	resolver EngineResolver
	opts     Options
}

var _ DataSourceService = (*Service)(nil)

// NewService builds a Service over the given resolver.
func NewService(resolver EngineResolver, opts Options) *Service {
	if opts.ConnectionTimeout <= 0 {
		opts.ConnectionTimeout = constant.ConnectionTimeout
	}

	return &Service{
		resolver: resolver,
		opts:     opts,
	}
}

// TestConnection probes the data source and always returns a tagged result.
func (s *Service) TestConnection(ctx context.Context, descriptor model.Descriptor) model.ConnectionResult {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.database.test_connection")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.engine", descriptor.Type.String()),
		attribute.String("app.request.host", descriptor.Host),
	)

	if strings.TrimSpace(descriptor.Type.String()) == "" {
		return failedConnection("missing required fields: type")
	}

	engine, err := s.resolver.Lookup(descriptor.Type)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Unsupported engine type", err)

		logger.Warnf("Connection test rejected: %v", err)

		return model.ConnectionResult{
			Success: false,
			Message: constant.UnsupportedEngineMessage + descriptor.Type.String(),
		}
	}

	if missing := descriptor.MissingFields(); len(missing) > 0 {
		return failedConnection("missing required fields: " + strings.Join(missing, ", "))
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.ConnectionTimeout)
	defer cancel()

	info, err := engine.Probe(ctx, descriptor)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Connection test failed", err)

		logger.Errorf("Connection test to %s data source at %s failed: %v", engine.Label(), descriptor.Host, err)

		return failedConnection(err.Error())
	}

	logger.Infof("Connection test to %s data source at %s succeeded", engine.Label(), descriptor.Host)

	return model.ConnectionResult{
		Success: true,
		Message: constant.ConnectionSuccessMessage,
		Data:    info,
	}
}

func failedConnection(reason string) model.ConnectionResult {
	return model.ConnectionResult{
		Success: false,
		Message: constant.ConnectionFailedPrefix + reason,
	}
}

// ExecuteQuery runs query on a fresh connection to the data source.
// Engine faults surface as QueryError; unregistered types as UnsupportedEngineError.
func (s *Service) ExecuteQuery(ctx context.Context, descriptor model.Descriptor, query model.Query) (*model.Result, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.database.execute_query")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.engine", descriptor.Type.String()),
		attribute.Int("app.request.params_count", len(query.Params)),
	)

	engine, err := s.resolver.Lookup(descriptor.Type)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Unsupported engine type", err)

		return nil, err
	}

	if strings.TrimSpace(query.SQL) == "" && query.Document == nil {
		err := pkg.ValidateBusinessError(constant.ErrEmptyQuery, constant.MongoCollectionDataSource)

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Empty query expression", err)

		return nil, err
	}

	ctx, cancel := withOptionalTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	result, err := engine.Run(ctx, descriptor, query)
	if err != nil {
		err = asQueryError(descriptor.Type, err)

		libOpentelemetry.HandleSpanError(&span, "Failed to execute query", err)

		logger.Errorf("Query on %s data source %s/%s failed: %v", engine.Label(), descriptor.Host, descriptor.Database, err)

		return nil, err
	}

	span.SetAttributes(attribute.Int("app.response.row_count", result.RowCount))

	logger.Infof("Query on %s data source %s/%s returned %d rows", engine.Label(), descriptor.Host, descriptor.Database, result.RowCount)

	return result, nil
}

// GetSchemaInfo introspects the data source on a fresh connection.
// Engine faults surface as SchemaError; unregistered types as UnsupportedEngineError.
func (s *Service) GetSchemaInfo(ctx context.Context, descriptor model.Descriptor) (*model.Schema, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.database.get_schema_info")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.engine", descriptor.Type.String()),
	)

	engine, err := s.resolver.Lookup(descriptor.Type)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Unsupported engine type", err)

		return nil, err
	}

	ctx, cancel := withOptionalTimeout(ctx, s.opts.SchemaTimeout)
	defer cancel()

	schema, err := engine.Introspect(ctx, descriptor)
	if err != nil {
		err = asSchemaError(descriptor.Type, err)

		libOpentelemetry.HandleSpanError(&span, "Failed to introspect schema", err)

		logger.Errorf("Schema introspection of %s data source %s/%s failed: %v", engine.Label(), descriptor.Host, descriptor.Database, err)

		return nil, err
	}

	logger.Infof("Schema introspection of %s data source %s/%s completed", engine.Label(), descriptor.Host, descriptor.Database)

	return schema, nil
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

func asQueryError(engineType model.EngineType, err error) error {
	var (
		queryErr       pkg.QueryError
		unsupportedErr pkg.UnsupportedEngineError
	)

	if errors.As(err, &queryErr) || errors.As(err, &unsupportedErr) {
		return err
	}

	return pkg.NewQueryError(engineType.String(), err)
}

func asSchemaError(engineType model.EngineType, err error) error {
	var (
		schemaErr      pkg.SchemaError
		unsupportedErr pkg.UnsupportedEngineError
	)

	if errors.As(err, &schemaErr) || errors.As(err, &unsupportedErr) {
		return err
	}

	return pkg.NewSchemaError(engineType.String(), err)
}
