// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// DeleteDataSourceByID soft deletes a data source and drops its cached schema.
func (uc *UseCase) DeleteDataSourceByID(ctx context.Context, id uuid.UUID) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.delete_data_source_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	if err := uc.DataSourceRepo.SoftDelete(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete data source on repo by id", err)

		logger.Errorf("Error deleting data source %s: %v", id, err)

		return err
	}

	if err := uc.SchemaCache.Invalidate(ctx, id); err != nil {
		logger.Warnf("Failed to invalidate cached schema of data source %s: %v", id, err)
	}

	uc.CircuitBreakerManager.Reset(id.String())

	return nil
}
