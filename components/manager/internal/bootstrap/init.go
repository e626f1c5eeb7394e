// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"github.com/LerianStudio/datagage/components/manager/internal/adapters/http/in"
	"github.com/LerianStudio/datagage/components/manager/internal/services"
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/database"
	"github.com/LerianStudio/datagage/pkg/redis"
)

// InitServers wires the data source API. Resources opened before a failure
// are released, newest first, before the error is returned.
func InitServers() (*Service, error) {
	cfg, logger, err := initConfigAndLogger()
	if err != nil {
		return nil, err
	}

	var cleanups []func()

	fail := func(err error) (*Service, error) {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}

		return nil, err
	}

	telemetry, telemetryCleanup, err := initTelemetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	cleanups = append(cleanups, telemetryCleanup)

	mongoRes, mongoCleanup, err := initMongoDB(cfg, logger)
	if err != nil {
		return fail(err)
	}

	cleanups = append(cleanups, mongoCleanup)

	rabbitRes, rabbitCleanups := initRabbitMQ(cfg, logger)
	cleanups = append(cleanups, rabbitCleanups...)

	redisRes, redisCleanup, err := initRedis(cfg, logger)
	if err != nil {
		return fail(err)
	}

	cleanups = append(cleanups, redisCleanup)

	exchange, routingKey := cfg.schemaRefreshRoute()

	useCase := &services.UseCase{
		DataSourceRepo:          mongoRes.dataSourceRepo,
		DataSourceService:       database.NewService(database.NewDefaultRegistry(), cfg.databaseOptions()),
		SchemaCache:             redis.NewSchemaCache(redisRes.repository, cfg.schemaCacheTTL()),
		RabbitMQRepo:            rabbitRes.producer,
		CircuitBreakerManager:   pkg.NewCircuitBreakerManager(logger).WithMetrics(initBreakerMetrics(cfg, telemetry, logger)),
		SchemaRefreshExchange:   exchange,
		SchemaRefreshRoutingKey: routingKey,
	}

	dataSourceHandler, err := in.NewDataSourceHandler(useCase)
	if err != nil {
		return fail(err)
	}

	rateLimit := cfg.rateLimitConfig()
	rateLimit.Storage = in.NewRedisStorage(redisRes.connection, logger)

	routeConfig := in.RouteConfig{
		CORS:      cfg.corsConfig(),
		RateLimit: rateLimit,
	}

	readiness := &in.ReadinessDeps{
		MongoConnection: mongoRes.connection,
		RedisConnection: redisRes.connection,
	}

	httpApp := in.NewRoutes(logger, telemetry, dataSourceHandler, routeConfig, readiness)

	logger.Infof("Manager configured with rate limiting enabled=%t window=%s", rateLimit.Enabled, rateLimit.Window)

	return &Service{
		Server:   NewServer(cfg, httpApp, logger),
		Logger:   logger,
		cleanups: cleanups,
	}, nil
}
