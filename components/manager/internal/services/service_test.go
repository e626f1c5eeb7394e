// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"testing"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/database"
	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	pkgRabbitmq "github.com/LerianStudio/datagage/pkg/rabbitmq"
	"github.com/LerianStudio/datagage/pkg/redis"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

var dataSourceID = uuid.MustParse("5f0c6a6e-3d1b-4c55-8a4e-7b9a1c2d3e4f")

type useCaseMocks struct {
	repo     *datasource.MockRepository
	service  *database.MockDataSourceService
	cache    *redis.MockSchemaStore
	producer *pkgRabbitmq.MockProducerRepository
}

func newTestUseCase(t *testing.T) (*UseCase, useCaseMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := useCaseMocks{
		repo:     datasource.NewMockRepository(ctrl),
		service:  database.NewMockDataSourceService(ctrl),
		cache:    redis.NewMockSchemaStore(ctrl),
		producer: pkgRabbitmq.NewMockProducerRepository(ctrl),
	}

	return &UseCase{
		DataSourceRepo:          m.repo,
		DataSourceService:       m.service,
		SchemaCache:             m.cache,
		RabbitMQRepo:            m.producer,
		CircuitBreakerManager:   pkg.NewCircuitBreakerManager(&log.NoneLogger{}),
		SchemaRefreshExchange:   constant.SchemaRefreshExchange,
		SchemaRefreshRoutingKey: constant.SchemaRefreshRoutingKey,
	}, m
}

func postgresRecord() *datasource.DataSource {
	return &datasource.DataSource{
		ID:       dataSourceID,
		Name:     "warehouse",
		Type:     model.EngineType(constant.EnginePostgreSQL),
		Host:     "db.internal",
		Port:     5432,
		Database: "analytics",
		Username: "reader",
		Password: "s3cret",
		Schema:   "public",
		Status:   constant.DataSourceStatusConnected,
	}
}

func mongoRecord() *datasource.DataSource {
	return &datasource.DataSource{
		ID:       dataSourceID,
		Name:     "events",
		Type:     model.EngineType(constant.EngineMongoDB),
		Host:     "mongo.internal",
		Port:     27017,
		Database: "events",
		Status:   constant.DataSourceStatusConnected,
	}
}

func notFound() error {
	return pkg.ValidateBusinessError(constant.ErrEntityNotFound, constant.MongoCollectionDataSource)
}
