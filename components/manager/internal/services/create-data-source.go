// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"strings"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CreateDataSource tests the connection of a new data source and stores it when reachable.
func (uc *UseCase) CreateDataSource(ctx context.Context, input *model.CreateDataSourceInput) (*datasource.DataSource, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.create_data_source")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.engine", input.Type.String()),
		attribute.String("app.request.name", input.Name),
	)

	logger.Infof("Creating %s data source %q", input.Type, input.Name)

	result := uc.DataSourceService.TestConnection(ctx, input.Descriptor())
	if !result.Success {
		err := pkg.ValidateBusinessError(constant.ErrConnectionTestFailed, constant.MongoCollectionDataSource,
			strings.TrimPrefix(result.Message, constant.ConnectionFailedPrefix))

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Connection test failed", err)

		logger.Warnf("Refusing to store data source %q: %s", input.Name, result.Message)

		return nil, err
	}

	entity, err := datasource.NewDataSource(uuid.New(), *input)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build data source", err)

		return nil, pkg.ValidateBusinessError(constant.ErrMissingRequiredFields, constant.MongoCollectionDataSource, "name")
	}

	record := &datasource.DataSourceMongoDBModel{}
	record.FromEntity(entity)

	created, err := uc.DataSourceRepo.Create(ctx, record)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create data source on repo", err)

		logger.Errorf("Failed to create data source %q: %v", input.Name, err)

		return nil, err
	}

	logger.Infof("Data source %s created", created.ID)

	return created, nil
}
