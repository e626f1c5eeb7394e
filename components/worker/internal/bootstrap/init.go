// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/LerianStudio/datagage/components/worker/internal/adapters/rabbitmq"
	"github.com/LerianStudio/datagage/components/worker/internal/services"
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/database"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	"github.com/LerianStudio/datagage/pkg/redis"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitMQ "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	libRedis "github.com/LerianStudio/lib-commons/v3/commons/redis"
	libZap "github.com/LerianStudio/lib-commons/v3/commons/zap"
)

// InitWorker wires the schema refresh consumer. Resources opened before a
// failure are released before the error is returned.
func InitWorker() (*Service, error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := libZap.InitializeLoggerWithError()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	telemetry, err := libOtel.InitializeTelemetryWithError(&libOtel.TelemetryConfig{
		LibraryName:               cfg.OtelLibraryName,
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            cfg.OtelServiceVersion,
		DeploymentEnv:             cfg.OtelDeploymentEnv,
		CollectorExporterEndpoint: cfg.OtelColExporterEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	var cleanups []func()

	fail := func(err error) (*Service, error) {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}

		return nil, err
	}

	cleanups = append(cleanups, telemetry.ShutdownTelemetry)

	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, url.QueryEscape(cfg.RabbitMQPass), cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	logger.Infof("RabbitMQ connecting to %s", pkg.RedactConnectionString(rabbitSource))

	rabbitMQConnection := &libRabbitMQ.RabbitMQConnection{
		ConnectionStringSource: rabbitSource,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Queue:                  cfg.RabbitMQSchemaRefreshQueue,
		Logger:                 logger,
	}

	routes, err := rabbitmq.NewConsumerRoutes(rabbitMQConnection, cfg.RabbitMQNumWorkers, cfg.RabbitMQPrefetchCount, logger)
	if err != nil {
		return fail(err)
	}

	mongoSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.MongoURI, cfg.MongoDBUser, url.QueryEscape(cfg.MongoDBPassword), cfg.MongoDBHost, cfg.MongoDBPort)
	if cfg.MongoDBParameters != "" {
		mongoSource += "/?" + cfg.MongoDBParameters
	}

	maxPoolSize := uint64(constant.MongoDefaultMaxPoolSize)
	if cfg.MongoMaxPoolSize > 0 {
		maxPoolSize = uint64(cfg.MongoMaxPoolSize)
	}

	logger.Infof("MongoDB connecting to %s", pkg.RedactConnectionString(mongoSource))

	mongoConnection := &mongoDB.MongoConnection{
		ConnectionStringSource: mongoSource,
		Database:               cfg.MongoDBName,
		Logger:                 logger,
		MaxPoolSize:            maxPoolSize,
	}

	dataSourceRepo, err := datasource.NewDataSourceMongoDBRepository(mongoConnection)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize data source repository: %w", err))
	}

	cleanups = append(cleanups, func() {
		if mongoConnection.DB != nil {
			_ = mongoConnection.DB.Disconnect(context.Background())
		}
	})

	redisConnection := &libRedis.RedisConnection{
		Address:    strings.Split(cfg.RedisHost, ","),
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
		Protocol:   cfg.RedisProtocol,
		MasterName: cfg.RedisMasterName,
		UseTLS:     cfg.RedisTLS,
		CACert:     cfg.RedisCACert,
		Logger:     logger,
	}

	redisRepository, err := redis.NewConsumerRedis(redisConnection)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize redis connection: %w", err))
	}

	cleanups = append(cleanups, func() { pkg.CloseQuietly(logger, "redis", redisConnection.Close) })

	useCase := &services.UseCase{
		DataSourceRepo:        dataSourceRepo,
		DataSourceService:     database.NewService(database.NewDefaultRegistry(), cfg.databaseOptions()),
		SchemaCache:           redis.NewSchemaCache(redisRepository, cfg.schemaCacheTTL()),
		CircuitBreakerManager: pkg.NewCircuitBreakerManager(logger).WithMetrics(breakerMetrics(cfg, telemetry, logger)),
	}

	return &Service{
		MultiQueueConsumer: NewMultiQueueConsumer(routes, useCase, cfg.RabbitMQSchemaRefreshQueue),
		Logger:             logger,
		healthServer:       NewHealthServer(cfg.healthPort(), rabbitMQConnection, redisConnection, logger),
		cleanups:           cleanups,
	}, nil
}

func breakerMetrics(cfg *Config, telemetry *libOtel.Telemetry, logger log.Logger) *pkg.BreakerMetrics {
	if !cfg.EnableTelemetry || telemetry == nil || telemetry.MetricProvider == nil {
		return pkg.NoopBreakerMetrics()
	}

	m, err := pkg.NewBreakerMetrics(telemetry.MetricProvider.Meter(cfg.OtelLibraryName))
	if err != nil {
		logger.Errorf("Failed to create circuit breaker metrics, falling back to noop: %v", err)
		return pkg.NoopBreakerMetrics()
	}

	return m
}
