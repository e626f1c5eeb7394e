// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// GetDataSourceByID retrieves a stored data source.
func (uc *UseCase) GetDataSourceByID(ctx context.Context, id uuid.UUID) (*datasource.DataSource, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_data_source_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	record, err := uc.DataSourceRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to get data source on repo by id", err)

		logger.Errorf("Error getting data source %s: %v", id, err)

		return nil, err
	}

	return record, nil
}
