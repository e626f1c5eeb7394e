// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// GetDataSourceSchema returns the cached schema of a stored data source, introspecting
// and caching it on a miss. A fresh introspection also records the sync time.
func (uc *UseCase) GetDataSourceSchema(ctx context.Context, id uuid.UUID) (*model.Schema, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_data_source_schema")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	record, err := uc.GetDataSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cached, err := uc.SchemaCache.Get(ctx, id)
	if err != nil {
		logger.Warnf("Schema cache unavailable for data source %s: %v", id, err)
	}

	if cached != nil {
		span.SetAttributes(attribute.Bool("app.response.cache_hit", true))

		logger.Infof("Cache hit for schema of data source %s", id)

		return cached, nil
	}

	result, err := uc.CircuitBreakerManager.Execute(id.String(), func() (any, error) {
		return uc.DataSourceService.GetSchemaInfo(ctx, record.Descriptor())
	})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to introspect data source", err)

		logger.Errorf("Schema introspection of data source %s failed: %v", id, err)

		var connErr pkg.ConnectionError
		if errors.As(err, &connErr) {
			if statusErr := uc.DataSourceRepo.UpdateStatus(ctx, id, constant.DataSourceStatusFailed, nil); statusErr != nil {
				logger.Warnf("Failed to mark data source %s as failed: %v", id, statusErr)
			}
		}

		return nil, err
	}

	schema, _ := result.(*model.Schema)
	if schema == nil {
		schema = &model.Schema{Database: record.Database}
	}

	if err := uc.SchemaCache.Set(ctx, id, schema); err != nil {
		logger.Warnf("Failed to cache schema of data source %s: %v", id, err)
	}

	now := time.Now().UTC()

	if err := uc.DataSourceRepo.UpdateStatus(ctx, id, constant.DataSourceStatusConnected, &now); err != nil {
		logger.Warnf("Failed to record sync time of data source %s: %v", id, err)
	}

	return schema, nil
}
