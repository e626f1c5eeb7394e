// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"strings"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/attribute"
)

// UpdateDataSourceByID merges the input into a stored data source and drops its
// cached schema. The connection is tested again, and the breaker reset, only when
// the input changes how the data source is reached.
func (uc *UseCase) UpdateDataSourceByID(ctx context.Context, id uuid.UUID, input *model.UpdateDataSourceInput) (*datasource.DataSource, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.update_data_source_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	current, err := uc.DataSourceRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to get data source on repo by id", err)

		return nil, err
	}

	merged := mergeDataSource(current, input)
	reconnect := input.ChangesConnection()

	if reconnect {
		result := uc.DataSourceService.TestConnection(ctx, merged.Descriptor())
		if !result.Success {
			err := pkg.ValidateBusinessError(constant.ErrConnectionTestFailed, constant.MongoCollectionDataSource,
				strings.TrimPrefix(result.Message, constant.ConnectionFailedPrefix))

			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Connection test failed", err)

			logger.Warnf("Refusing to update data source %s: %s", id, result.Message)

			return nil, err
		}

		merged.Status = constant.DataSourceStatusConnected
	}

	merged.UpdatedAt = time.Now()

	if err := uc.DataSourceRepo.Update(ctx, id, updateDocument(merged, input)); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update data source on repo", err)

		logger.Errorf("Error updating data source %s: %v", id, err)

		return nil, err
	}

	if reconnect {
		uc.CircuitBreakerManager.Reset(id.String())
	}

	if err := uc.SchemaCache.Invalidate(ctx, id); err != nil {
		logger.Warnf("Failed to invalidate cached schema of data source %s: %v", id, err)
	}

	logger.Infof("Data source %s updated", id)

	return merged, nil
}

func mergeDataSource(current *datasource.DataSource, input *model.UpdateDataSourceInput) *datasource.DataSource {
	merged := *current

	if input.Name != nil {
		merged.Name = *input.Name
	}

	if input.Description != nil {
		merged.Description = *input.Description
	}

	descriptor := input.Apply(current.Descriptor())

	merged.Type = descriptor.Type
	merged.Host = descriptor.Host
	merged.Port = descriptor.Port
	merged.Database = descriptor.Database
	merged.Username = descriptor.Username
	merged.Password = descriptor.Password
	merged.Schema = descriptor.Schema
	merged.SSL = descriptor.SSL
	merged.ConnectionOptions = descriptor.ConnectionOptions

	return &merged
}

// updateDocument sets every merged field except the password, which is written only when one was supplied.
func updateDocument(merged *datasource.DataSource, input *model.UpdateDataSourceInput) *bson.M {
	set := bson.M{
		"name":               merged.Name,
		"description":        merged.Description,
		"type":               merged.Type.String(),
		"host":               merged.Host,
		"port":               merged.Port,
		"database":           merged.Database,
		"username":           merged.Username,
		"schema":             merged.Schema,
		"ssl":                merged.SSL,
		"connection_options": merged.ConnectionOptions,
		"status":             merged.Status,
		"updated_at":         merged.UpdatedAt,
	}

	if input.Password != nil && *input.Password != "" {
		set["password"] = merged.Password
	}

	return &bson.M{"$set": set}
}
