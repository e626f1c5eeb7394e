// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/LerianStudio/datagage/components/manager/internal/adapters/rabbitmq"
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	"github.com/LerianStudio/datagage/pkg/redis"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	libRedis "github.com/LerianStudio/lib-commons/v3/commons/redis"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
)

type mongoResources struct {
	connection     *mongoDB.MongoConnection
	dataSourceRepo *datasource.DataSourceMongoDBRepository
}

type rabbitResources struct {
	connection *libRabbitmq.RabbitMQConnection
	producer   *rabbitmq.ProducerRabbitMQRepository
}

type redisResources struct {
	connection *libRedis.RedisConnection
	repository *redis.RedisConsumerRepository
}

// initConfigAndLogger loads configuration from environment variables, validates it,
// and initializes the structured logger.
func initConfigAndLogger() (*Config, log.Logger, error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to load config from env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := zap.InitializeLoggerWithError()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

func initTelemetry(cfg *Config, logger log.Logger) (*libOtel.Telemetry, func(), error) {
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
		return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	cleanup := func() {
		logger.Info("Cleanup: shutting down telemetry")
		telemetry.ShutdownTelemetry()
	}

	return telemetry, cleanup, nil
}

// initBreakerMetrics registers the circuit breaker instruments on the telemetry
// meter, falling back to noop instruments when telemetry is disabled.
func initBreakerMetrics(cfg *Config, telemetry *libOtel.Telemetry, logger log.Logger) *pkg.BreakerMetrics {
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

// mongoConnectionString assembles the record store URI. The password is escaped
// so reserved characters survive the URI parser.
func mongoConnectionString(cfg *Config) string {
	source := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.MongoURI, cfg.MongoDBUser, url.QueryEscape(cfg.MongoDBPassword), cfg.MongoDBHost, cfg.MongoDBPort)

	if cfg.MongoDBParameters != "" {
		source += "/?" + cfg.MongoDBParameters
	}

	return source
}

// initMongoDB connects the data source record store and makes sure its indexes exist.
func initMongoDB(cfg *Config, logger log.Logger) (*mongoResources, func(), error) {
	mongoSource := mongoConnectionString(cfg)

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
		return nil, nil, fmt.Errorf("failed to initialize data source mongodb repository: %w", err)
	}

	cleanup := func() {
		if mongoConnection.DB != nil {
			logger.Info("Cleanup: disconnecting MongoDB")

			if disconnectErr := mongoConnection.DB.Disconnect(context.Background()); disconnectErr != nil {
				logger.Errorf("Cleanup: failed to disconnect MongoDB: %v", disconnectErr)
			}
		}
	}

	logger.Info("Ensuring MongoDB indexes exist for data sources...")

	ctx := libCommons.ContextWithLogger(context.Background(), logger)

	if err = dataSourceRepo.EnsureIndexes(ctx); err != nil {
		cleanup()

		return nil, nil, fmt.Errorf("failed to ensure data source indexes: %w", err)
	}

	return &mongoResources{
		connection:     mongoConnection,
		dataSourceRepo: dataSourceRepo,
	}, cleanup, nil
}

// initRabbitMQ creates the schema refresh producer and the background
// connection monitor. A broker that is down at startup is not fatal.
func initRabbitMQ(cfg *Config, logger log.Logger) (*rabbitResources, []func()) {
	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, url.QueryEscape(cfg.RabbitMQPass), cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	logger.Infof("RabbitMQ connecting to %s", pkg.RedactConnectionString(rabbitSource))

	rabbitMQConnection := &libRabbitmq.RabbitMQConnection{
		ConnectionStringSource: rabbitSource,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Logger:                 logger,
	}

	producer := rabbitmq.NewProducerRabbitMQ(rabbitMQConnection)

	monitor := NewRabbitMQMonitor(rabbitMQConnection, logger)
	monitor.Start()

	logger.Info("RabbitMQ background connection monitor started")

	cleanups := []func(){
		func() {
			logger.Info("Cleanup: closing RabbitMQ connection")

			if rabbitMQConnection.Channel != nil {
				pkg.CloseQuietly(logger, "rabbitmq channel", rabbitMQConnection.Channel.Close)
			}

			if rabbitMQConnection.Connection != nil && !rabbitMQConnection.Connection.IsClosed() {
				pkg.CloseQuietly(logger, "rabbitmq connection", rabbitMQConnection.Connection.Close)
			}
		},
		func() {
			logger.Info("Cleanup: stopping RabbitMQ connection monitor")
			monitor.Stop()
		},
	}

	return &rabbitResources{
		connection: rabbitMQConnection,
		producer:   producer,
	}, cleanups
}

// initRedis connects the cache shared by the schema cache and the rate limiter.
func initRedis(cfg *Config, logger log.Logger) (*redisResources, func(), error) {
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

	repository, err := redis.NewConsumerRedis(redisConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis connection: %w", err)
	}

	cleanup := func() {
		logger.Info("Cleanup: closing Redis connection")
		pkg.CloseQuietly(logger, "redis connection", redisConnection.Close)
	}

	return &redisResources{
		connection: redisConnection,
		repository: repository,
	}, cleanup, nil
}
