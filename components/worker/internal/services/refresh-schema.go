// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"encoding/json"
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

// RefreshSchema handles one schema refresh message: it introspects the stored
// data source, replaces its cached schema and records the sync time.
// A connection fault marks the record as failed before the error is returned.
func (uc *UseCase) RefreshSchema(ctx context.Context, body []byte) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.worker.refresh_schema")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	var message model.SchemaRefreshMessage
	if err := json.Unmarshal(body, &message); err != nil {
		badPayload := pkg.ValidationError{
			EntityType: constant.MongoCollectionDataSource,
			Code:       constant.ErrMissingRequiredFields.Error(),
			Title:      "Invalid Refresh Message",
			Message:    "The schema refresh message could not be decoded.",
			Err:        err,
		}

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid refresh message", badPayload)

		logger.Errorf("Error unmarshalling schema refresh message: %v", err)

		return badPayload
	}

	if message.DataSourceID == uuid.Nil {
		err := pkg.ValidateBusinessError(constant.ErrMissingRequiredFields, constant.MongoCollectionDataSource, "dataSourceId")

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Refresh message without data source id", err)

		return err
	}

	span.SetAttributes(attribute.String("app.request.data_source_id", message.DataSourceID.String()))

	record, err := uc.DataSourceRepo.FindByID(ctx, message.DataSourceID)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to load data source", err)

		logger.Errorf("Failed to load data source %s: %v", message.DataSourceID, err)

		return err
	}

	id := record.ID.String()

	result, err := uc.CircuitBreakerManager.Execute(id, func() (any, error) {
		return uc.DataSourceService.GetSchemaInfo(ctx, record.Descriptor())
	})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to introspect data source", err)

		logger.Errorf("Schema refresh of data source %s failed: %v", id, err)

		var connErr pkg.ConnectionError
		if errors.As(err, &connErr) {
			if statusErr := uc.DataSourceRepo.UpdateStatus(ctx, record.ID, constant.DataSourceStatusFailed, nil); statusErr != nil {
				logger.Warnf("Failed to mark data source %s as failed: %v", id, statusErr)
			}
		}

		return err
	}

	schema, _ := result.(*model.Schema)
	if schema == nil {
		schema = &model.Schema{Database: record.Database}
	}

	if err := uc.SchemaCache.Set(ctx, record.ID, schema); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to cache schema", err)

		logger.Errorf("Failed to cache schema of data source %s: %v", id, err)

		return err
	}

	now := time.Now().UTC()

	if err := uc.DataSourceRepo.UpdateStatus(ctx, record.ID, constant.DataSourceStatusConnected, &now); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to record sync time", err)

		return err
	}

	logger.Infof("Schema of data source %s refreshed (%d tables, %d collections)", id, len(schema.Tables), len(schema.Collections))

	return nil
}
