// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// TestConnection probes a data source that is not stored. It never fails:
// the outcome, including rejected parameters, is carried by the result.
func (uc *UseCase) TestConnection(ctx context.Context, descriptor model.Descriptor) model.ConnectionResult {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.test_connection")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.engine", descriptor.Type.String()),
	)

	return uc.DataSourceService.TestConnection(ctx, descriptor)
}

// TestDataSourceByID probes a stored data source and records the outcome as its status.
func (uc *UseCase) TestDataSourceByID(ctx context.Context, id uuid.UUID) (*model.ConnectionResult, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.test_data_source_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	record, err := uc.GetDataSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := uc.DataSourceService.TestConnection(ctx, record.Descriptor())

	status := constant.DataSourceStatusFailed
	if result.Success {
		status = constant.DataSourceStatusConnected
	}

	span.SetAttributes(attribute.String("app.response.status", status))

	if err := uc.DataSourceRepo.UpdateStatus(ctx, id, status, nil); err != nil {
		logger.Warnf("Failed to record status %s of data source %s: %v", status, id, err)
	}

	return &result, nil
}
