// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/database"
)

// Config holds the worker's parameters read from environment variables.
type Config struct {
	EnvName                    string `env:"ENV_NAME"`
	LogLevel                   string `env:"LOG_LEVEL"`
	OtelServiceName            string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName            string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion         string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv          string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry            bool   `env:"ENABLE_TELEMETRY"`
	RabbitURI                  string `env:"RABBITMQ_URI"`
	RabbitMQHost               string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost           string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP           string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser               string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass               string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQSchemaRefreshQueue string `env:"RABBITMQ_SCHEMA_REFRESH_QUEUE"`
	RabbitMQNumWorkers         int    `env:"RABBITMQ_NUMBERS_OF_WORKERS"`
	RabbitMQPrefetchCount      int    `env:"RABBITMQ_PREFETCH_COUNT"`
	RabbitMQHealthCheckURL     string `env:"RABBITMQ_HEALTH_CHECK_URL"`
	// MongoDB
	MongoURI          string `env:"MONGO_URI"`
	MongoDBHost       string `env:"MONGO_HOST"`
	MongoDBName       string `env:"MONGO_NAME"`
	MongoDBUser       string `env:"MONGO_USER"`
	MongoDBPassword   string `env:"MONGO_PASSWORD"`
	MongoDBPort       string `env:"MONGO_PORT"`
	MongoDBParameters string `env:"MONGO_PARAMETERS"`
	MongoMaxPoolSize  int    `env:"MONGO_MAX_POOL_SIZE"`
	// Redis
	RedisHost       string `env:"REDIS_HOST"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB"`
	RedisProtocol   int    `env:"REDIS_PROTOCOL"`
	RedisMasterName string `env:"REDIS_MASTER_NAME"`
	RedisTLS        bool   `env:"REDIS_TLS"`
	RedisCACert     string `env:"REDIS_CA_CERT"`
	// External data sources
	ConnectionTimeoutSeconds int `env:"DATASOURCE_CONNECTION_TIMEOUT_SECONDS"`
	SchemaTimeoutSeconds     int `env:"DATASOURCE_SCHEMA_TIMEOUT_SECONDS"`
	SchemaCacheTTLSeconds    int `env:"SCHEMA_CACHE_TTL_SECONDS"`
	// Health probes
	HealthPort string `env:"HEALTH_PORT"`
}

// Validate checks required fields and bounds, reporting every problem at once.
func (cfg *Config) Validate() error {
	var problems []string

	required := []struct {
		value string
		env   string
	}{
		{cfg.RabbitMQHost, "RABBITMQ_HOST"},
		{cfg.RabbitMQPortAMQP, "RABBITMQ_PORT_AMQP"},
		{cfg.RabbitMQUser, "RABBITMQ_DEFAULT_USER"},
		{cfg.RabbitMQPass, "RABBITMQ_DEFAULT_PASS"},
		{cfg.RabbitMQSchemaRefreshQueue, "RABBITMQ_SCHEMA_REFRESH_QUEUE"},
		{cfg.MongoDBHost, "MONGO_HOST"},
		{cfg.MongoDBName, "MONGO_NAME"},
		{cfg.RedisHost, "REDIS_HOST"},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.env+" is required")
		}
	}

	if cfg.MongoMaxPoolSize < 0 || cfg.MongoMaxPoolSize > constant.MongoMaxPoolSizeUpperBound {
		problems = append(problems, fmt.Sprintf("MONGO_MAX_POOL_SIZE must be between 0 and %d", constant.MongoMaxPoolSizeUpperBound))
	}

	if cfg.RabbitMQNumWorkers < 0 {
		problems = append(problems, "RABBITMQ_NUMBERS_OF_WORKERS must not be negative")
	}

	if cfg.ConnectionTimeoutSeconds < 0 || cfg.SchemaTimeoutSeconds < 0 || cfg.SchemaCacheTTLSeconds < 0 {
		problems = append(problems, "timeouts and TTLs must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}

	return nil
}

// databaseOptions turns the configured timeouts into service options. Unset values keep the defaults.
func (cfg *Config) databaseOptions() database.Options {
	opts := database.DefaultOptions()

	if cfg.ConnectionTimeoutSeconds > 0 {
		opts.ConnectionTimeout = time.Duration(cfg.ConnectionTimeoutSeconds) * time.Second
	}

	if cfg.SchemaTimeoutSeconds > 0 {
		opts.SchemaTimeout = time.Duration(cfg.SchemaTimeoutSeconds) * time.Second
	}

	return opts
}

func (cfg *Config) schemaCacheTTL() time.Duration {
	if cfg.SchemaCacheTTLSeconds <= 0 {
		return constant.DefaultSchemaCacheTTL
	}

	return time.Duration(cfg.SchemaCacheTTLSeconds) * time.Second
}

func (cfg *Config) healthPort() string {
	if cfg.HealthPort == "" {
		return constant.DefaultWorkerHealthPort
	}

	return cfg.HealthPort
}
