// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package datasource

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// Repository provides an interface for operations related to stored data sources.
//
//go:generate mockgen --destination=datasource.mongodb.mock.go --package=datasource . Repository
type Repository interface {
	Create(ctx context.Context, record *DataSourceMongoDBModel) (*DataSource, error)
	FindByID(ctx context.Context, id uuid.UUID) (*DataSource, error)
	FindList(ctx context.Context, filters http.QueryHeader) ([]*DataSource, int64, error)
	Update(ctx context.Context, id uuid.UUID, updateFields *bson.M) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, lastSync *time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// DataSourceMongoDBRepository is a MongoDB-specific implementation of the Repository.
type DataSourceMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

var _ Repository = (*DataSourceMongoDBRepository)(nil)

// NewDataSourceMongoDBRepository returns a new instance of DataSourceMongoDBRepository using the given MongoDB connection.
func NewDataSourceMongoDBRepository(mc *libMongo.MongoConnection) (*DataSourceMongoDBRepository, error) {
	if mc == nil {
		return nil, errors.New("mongo connection must not be nil")
	}

	r := &DataSourceMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, err
	}

	return r, nil
}

func (dm *DataSourceMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := dm.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	return db.Database(strings.ToLower(dm.Database)).Collection(constant.MongoCollectionDataSource), nil
}

func notDeleted() bson.D {
	return bson.D{{Key: "$eq", Value: nil}}
}

// Create inserts a new data source record.
func (dm *DataSourceMongoDBRepository) Create(ctx context.Context, record *DataSourceMongoDBModel) (*DataSource, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.create_data_source")
	defer span.End()

	coll, err := dm.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	span.SetAttributes(
		attribute.String("app.request.data_source_id", record.ID.String()),
		attribute.String("app.request.engine", record.Type),
	)

	if _, err = coll.InsertOne(ctx, record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to insert data source", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByID retrieves a data source that was not soft deleted.
func (dm *DataSourceMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*DataSource, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.find_data_source_by_id")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.data_source_id", id.String()))

	coll, err := dm.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	var record DataSourceMongoDBModel

	err = coll.FindOne(ctx, bson.M{"_id": id, "deleted_at": notDeleted()}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Data source not found", err)

			return nil, pkg.ValidateBusinessError(constant.ErrEntityNotFound, constant.MongoCollectionDataSource)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to find data source", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindList retrieves a page of data sources and the total matching the filters.
func (dm *DataSourceMongoDBRepository) FindList(ctx context.Context, filters http.QueryHeader) ([]*DataSource, int64, error) {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.find_all_data_sources")
	defer span.End()

	coll, err := dm.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, 0, err
	}

	queryFilter := bson.M{"deleted_at": notDeleted()}

	if !pkg.IsNilOrEmpty(&filters.Type) {
		queryFilter["type"] = filters.Type
	}

	if !pkg.IsNilOrEmpty(&filters.Status) {
		queryFilter["status"] = filters.Status
	}

	if !pkg.IsNilOrEmpty(&filters.Name) {
		queryFilter["name"] = bson.M{
			"$regex":   regexp.QuoteMeta(filters.Name),
			"$options": "i",
		}
	}

	if err := libOpentelemetry.SetSpanAttributesFromStruct(&span, "filters", filters); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert filters to JSON string", err)
	}

	sortDirection := -1
	if filters.SortOrder == constant.SortOrderAsc {
		sortDirection = 1
	}

	limit := int64(filters.Limit)
	skip := int64(filters.Page*filters.Limit - filters.Limit)

	opts := options.Find().
		SetLimit(limit).
		SetSkip(skip).
		SetSort(bson.D{{Key: "created_at", Value: sortDirection}, {Key: "_id", Value: sortDirection}})

	cur, err := coll.Find(ctx, queryFilter, opts)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find data sources", err)

		return nil, 0, err
	}

	defer pkg.CloseQuietly(libCommons.NewLoggerFromContext(ctx), "data source cursor", func() error {
		return cur.Close(context.WithoutCancel(ctx))
	})

	var records []DataSourceMongoDBModel
	if err := cur.All(ctx, &records); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to decode data sources", err)

		return nil, 0, err
	}

	total, err := coll.CountDocuments(ctx, queryFilter)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to count data sources", err)

		return nil, 0, err
	}

	dataSources := make([]*DataSource, 0, len(records))
	for i := range records {
		dataSources = append(dataSources, records[i].ToEntity())
	}

	return dataSources, total, nil
}

// Update sets the given fields on a data source that was not soft deleted.
func (dm *DataSourceMongoDBRepository) Update(ctx context.Context, id uuid.UUID, updateFields *bson.M) error {
	tracer := libCommons.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.update_data_source")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.data_source_id", id.String()))

	coll, err := dm.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": notDeleted()},
		updateFields,
		options.Update().SetUpsert(false),
	)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update data source", err)

		return err
	}

	if result.MatchedCount == 0 {
		err := pkg.ValidateBusinessError(constant.ErrEntityNotFound, constant.MongoCollectionDataSource)

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Data source not found", err)

		return err
	}

	return nil
}

// UpdateStatus records the outcome of the last connection check and, when given, the last schema sync.
func (dm *DataSourceMongoDBRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, lastSync *time.Time) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}

	if lastSync != nil {
		set["last_sync"] = *lastSync
	}

	return dm.Update(ctx, id, &bson.M{"$set": set})
}

// SoftDelete marks a data source as deleted.
func (dm *DataSourceMongoDBRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.delete_data_source")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.data_source_id", id.String()))

	coll, err := dm.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	now := time.Now()

	filter := bson.D{{Key: "_id", Value: id}, {Key: "deleted_at", Value: notDeleted()}}
	deletedAt := bson.D{{Key: "$set", Value: bson.D{
		{Key: "deleted_at", Value: now},
		{Key: "status", Value: constant.DataSourceStatusDisconnected},
		{Key: "updated_at", Value: now},
	}}}

	result, err := coll.UpdateOne(ctx, filter, deletedAt)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete data source", err)

		return err
	}

	if result.MatchedCount == 0 {
		err := pkg.ValidateBusinessError(constant.ErrEntityNotFound, constant.MongoCollectionDataSource)

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Data source not found", err)

		return err
	}

	logger.Infof("Data source %s soft deleted", id)

	return nil
}
