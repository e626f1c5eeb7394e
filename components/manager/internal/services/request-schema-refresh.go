// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"time"

	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// RequestSchemaRefresh queues an asynchronous schema refresh of a stored data source.
func (uc *UseCase) RequestSchemaRefresh(ctx context.Context, id uuid.UUID) (*model.SchemaRefreshMessage, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.request_schema_refresh")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	if _, err := uc.GetDataSourceByID(ctx, id); err != nil {
		return nil, err
	}

	message := model.SchemaRefreshMessage{
		DataSourceID: id,
		RequestedAt:  time.Now().UTC(),
	}

	if _, err := uc.RabbitMQRepo.ProducerDefault(ctx, uc.SchemaRefreshExchange, uc.SchemaRefreshRoutingKey, message); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to publish schema refresh message", err)

		logger.Errorf("Failed to queue schema refresh of data source %s: %v", id, err)

		return nil, err
	}

	logger.Infof("Schema refresh of data source %s queued", id)

	return &message, nil
}
