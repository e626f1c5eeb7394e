// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ExecuteQuery runs a query against a stored data source through its circuit breaker.
func (uc *UseCase) ExecuteQuery(ctx context.Context, id uuid.UUID, input *model.ExecuteQueryInput) (*model.Result, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.execute_query")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	record, err := uc.GetDataSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query, err := input.ToQuery(record.Type)
	if err != nil {
		err = queryInputError(err)

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query expression", err)

		return nil, err
	}

	result, err := uc.CircuitBreakerManager.Execute(id.String(), func() (any, error) {
		return uc.DataSourceService.ExecuteQuery(ctx, record.Descriptor(), query)
	})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to execute query", err)

		logger.Errorf("Query on data source %s failed: %v", id, err)

		return nil, err
	}

	rows, _ := result.(*model.Result)
	if rows == nil {
		rows = model.NewResult(nil, nil)
	}

	span.SetAttributes(attribute.Int("app.response.row_count", rows.RowCount))

	return rows, nil
}

func queryInputError(err error) error {
	if errors.Is(err, model.ErrEmptyQueryExpression) {
		return pkg.ValidateBusinessError(constant.ErrEmptyQuery, constant.MongoCollectionDataSource)
	}

	detail := err.Error()

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		if parts := joined.Unwrap(); len(parts) > 1 {
			detail = parts[len(parts)-1].Error()
		}
	}

	return pkg.ValidateBusinessError(constant.ErrInvalidDocumentQuery, constant.MongoCollectionDataSource, detail)
}
