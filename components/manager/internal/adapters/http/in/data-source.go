// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"encoding/json"
	"errors"

	"github.com/LerianStudio/datagage/components/manager/internal/services"
	_ "github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
	_ "github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	"github.com/LerianStudio/datagage/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// DataSourceHandler handles HTTP requests for data source operations.
type DataSourceHandler struct {
	service *services.UseCase
}

// NewDataSourceHandler creates a new DataSourceHandler with the given service dependency.
// It returns an error if service is nil.
func NewDataSourceHandler(service *services.UseCase) (*DataSourceHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for DataSourceHandler")
	}

	return &DataSourceHandler{service: service}, nil
}

// TestConnection probes a data source that is not stored.
//
//	@Summary		Test a connection
//	@Description	Tests connection parameters without storing them. Always answers 200; the outcome is in the status field.
//	@Tags			Data source
//	@Accept			json
//	@Produce		json
//	@Param			descriptor	body		model.Descriptor	true	"Connection parameters"
//	@Success		200			{object}	model.ConnectionTestResponse
//	@Router			/v1/data-sources/test [post]
func (ds *DataSourceHandler) TestConnection(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.test_connection")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	var descriptor model.Descriptor
	if err := json.Unmarshal(c.Body(), &descriptor); err != nil {
		logger.Warnf("Ad hoc connection test with undecodable body: %v", err)

		return commonsHttp.OK(c, model.ConnectionTestResponse{
			Status:  constant.ResponseStatusError,
			Message: constant.ConnectionFailedPrefix + "invalid request body",
		})
	}

	result := ds.service.TestConnection(ctx, descriptor)

	return commonsHttp.OK(c, model.NewConnectionTestResponse(result, constant.ResponseStatusSuccess, constant.ResponseStatusError))
}

// CreateDataSource registers a data source after a successful connection test.
//
//	@Summary		Create a data source
//	@Description	Tests the connection and stores the data source with status connected
//	@Tags			Data source
//	@Accept			json
//	@Produce		json
//	@Param			data-source	body		model.CreateDataSourceInput	true	"Data source"
//	@Success		201			{object}	datasource.DataSource
//	@Failure		400			{object}	pkg.ResponseError
//	@Router			/v1/data-sources [post]
func (ds *DataSourceHandler) CreateDataSource(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.create")
	defer span.End()

	input := p.(*model.CreateDataSourceInput)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.engine", input.Type.String()),
	)

	created, err := ds.service.CreateDataSource(ctx, input)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create data source", err)

		logger.Errorf("Failed to create data source, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully created data source %s", created.ID)

	return commonsHttp.JSONResponse(c, fiber.StatusCreated, created)
}

// GetAllDataSources lists stored data sources.
//
//	@Summary		List data sources
//	@Description	Lists stored data sources, newest first by default. Passwords are never returned.
//	@Tags			Data source
//	@Produce		json
//	@Param			limit		query		int		false	"Limit"			default(10)
//	@Param			page		query		int		false	"Page"			default(1)
//	@Param			type		query		string	false	"Engine type"
//	@Param			status		query		string	false	"Status"
//	@Param			name		query		string	false	"Name"
//	@Param			sort_order	query		string	false	"Sort order"	Enums(asc,desc)
//	@Success		200			{object}	model.Pagination{items=[]datasource.DataSource}
//	@Failure		400			{object}	pkg.ResponseError
//	@Router			/v1/data-sources [get]
func (ds *DataSourceHandler) GetAllDataSources(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	headerParams, err := http.ValidateParameters(c.Queries())
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to validate query parameters", err)

		logger.Errorf("Failed to validate query parameters, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	items, total, err := ds.service.GetAllDataSources(ctx, *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve data sources", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.Pagination{
		Items: items,
		Page:  headerParams.Page,
		Limit: headerParams.Limit,
		Total: int(total),
	})
}

// GetDataSourceByID returns a stored data source.
//
//	@Summary		Get a data source
//	@Tags			Data source
//	@Produce		json
//	@Param			id	path		string	true	"Data source ID"
//	@Success		200	{object}	datasource.DataSource
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id} [get]
func (ds *DataSourceHandler) GetDataSourceByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.get_by_id")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	record, err := ds.service.GetDataSourceByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to retrieve data source", err)

		logger.Errorf("Failed to retrieve data source %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, record)
}

// UpdateDataSourceByID changes a stored data source.
//
//	@Summary		Update a data source
//	@Description	Merges the given fields. Connection changes are tested first; an absent password keeps the stored one.
//	@Tags			Data source
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string						true	"Data source ID"
//	@Param			data-source	body		model.UpdateDataSourceInput	true	"Fields to change"
//	@Success		200			{object}	datasource.DataSource
//	@Failure		400			{object}	pkg.ResponseError
//	@Failure		404			{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id} [patch]
func (ds *DataSourceHandler) UpdateDataSourceByID(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.update")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)
	input := p.(*model.UpdateDataSourceInput)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	updated, err := ds.service.UpdateDataSourceByID(ctx, id, input)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update data source", err)

		logger.Errorf("Failed to update data source %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, updated)
}

// DeleteDataSourceByID soft deletes a stored data source.
//
//	@Summary		Delete a data source
//	@Tags			Data source
//	@Param			id	path	string	true	"Data source ID"
//	@Success		204
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id} [delete]
func (ds *DataSourceHandler) DeleteDataSourceByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.delete")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	if err := ds.service.DeleteDataSourceByID(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete data source", err)

		logger.Errorf("Failed to delete data source %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	logger.Infof("Successfully deleted data source %s", id)

	return commonsHttp.NoContent(c)
}

// TestDataSourceByID probes a stored data source and records its status.
//
//	@Summary		Test a stored data source
//	@Tags			Data source
//	@Produce		json
//	@Param			id	path		string	true	"Data source ID"
//	@Success		200	{object}	model.ConnectionTestResponse
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id}/test [post]
func (ds *DataSourceHandler) TestDataSourceByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.test_by_id")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	result, err := ds.service.TestDataSourceByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to test data source", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewConnectionTestResponse(*result, constant.ResponseStatusSuccess, constant.ResponseStatusError))
}

// ExecuteQuery runs a query against a stored data source.
//
//	@Summary		Execute a query
//	@Description	Runs SQL with positional parameters, or a document query on MongoDB data sources
//	@Tags			Data source
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Data source ID"
//	@Param			query	body		model.ExecuteQueryInput	true	"Query"
//	@Success		200		{object}	model.Result
//	@Failure		400		{object}	pkg.ResponseError
//	@Failure		422		{object}	pkg.ResponseError
//	@Failure		502		{object}	pkg.ResponseError
//	@Failure		503		{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id}/query [post]
func (ds *DataSourceHandler) ExecuteQuery(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.execute_query")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)
	input := p.(*model.ExecuteQueryInput)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	result, err := ds.service.ExecuteQuery(ctx, id, input)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to execute query", err)

		logger.Errorf("Failed to execute query on data source %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, result)
}

// GetDataSourceSchema returns the schema of a stored data source.
//
//	@Summary		Get the schema of a data source
//	@Description	Serves the cached schema, introspecting the data source on a miss
//	@Tags			Data source
//	@Produce		json
//	@Param			id	path		string	true	"Data source ID"
//	@Success		200	{object}	model.Schema
//	@Failure		404	{object}	pkg.ResponseError
//	@Failure		502	{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id}/schema [get]
func (ds *DataSourceHandler) GetDataSourceSchema(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.get_schema")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	schema, err := ds.service.GetDataSourceSchema(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve schema", err)

		logger.Errorf("Failed to retrieve schema of data source %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, schema)
}

// RequestSchemaRefresh queues a schema refresh of a stored data source.
//
//	@Summary		Refresh the schema of a data source
//	@Tags			Data source
//	@Produce		json
//	@Param			id	path		string	true	"Data source ID"
//	@Success		202	{object}	model.SchemaRefreshMessage
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/data-sources/{id}/schema/refresh [post]
func (ds *DataSourceHandler) RequestSchemaRefresh(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.data_source.refresh_schema")
	defer span.End()

	id := c.Locals(UUIDPathParameter).(uuid.UUID)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.data_source_id", id.String()),
	)

	message, err := ds.service.RequestSchemaRefresh(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to queue schema refresh", err)

		return http.WithError(c, err)
	}

	return commonsHttp.JSONResponse(c, fiber.StatusAccepted, message)
}
