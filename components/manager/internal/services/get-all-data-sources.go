// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	"github.com/LerianStudio/datagage/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// GetAllDataSources returns one page of stored data sources and the total number matching the filters.
func (uc *UseCase) GetAllDataSources(ctx context.Context, filters http.QueryHeader) ([]*datasource.DataSource, int64, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_all_data_sources")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	if err := libOpentelemetry.SetSpanAttributesFromStruct(&span, "app.request.query_params", filters); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert query params to JSON string", err)
	}

	dataSources, total, err := uc.DataSourceRepo.FindList(ctx, filters)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list data sources on repo", err)

		logger.Errorf("Error listing data sources: %v", err)

		return nil, 0, err
	}

	if dataSources == nil {
		dataSources = []*datasource.DataSource{}
	}

	return dataSources, total, nil
}
