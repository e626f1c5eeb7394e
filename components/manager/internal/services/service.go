// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/database"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	pkgRabbitmq "github.com/LerianStudio/datagage/pkg/rabbitmq"
	"github.com/LerianStudio/datagage/pkg/redis"
)

// UseCase is a struct to implement the services methods
type UseCase struct {
	// DataSourceRepo provides an abstraction on top of the stored data sources.
	DataSourceRepo datasource.Repository

	// DataSourceService tests, queries and introspects external databases.
	DataSourceService database.DataSourceService

	// SchemaCache keeps introspected schemas per data source.
	SchemaCache redis.SchemaStore

	// RabbitMQRepo provides an abstraction on top of the producer rabbitmq.
	RabbitMQRepo pkgRabbitmq.ProducerRepository

	// CircuitBreakerManager fast-fails data sources that keep refusing connections.
	CircuitBreakerManager *pkg.CircuitBreakerManager

	// SchemaRefreshExchange and SchemaRefreshRoutingKey address the worker queue.
	SchemaRefreshExchange   string
	SchemaRefreshRoutingKey string
}
