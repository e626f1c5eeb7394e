// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/LerianStudio/datagage/components/manager/internal/adapters/http/in"
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/database"
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName                 string `env:"ENV_NAME"`
	ServerAddress           string `env:"SERVER_ADDRESS"`
	LogLevel                string `env:"LOG_LEVEL"`
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`
	// MongoDB
	MongoURI          string `env:"MONGO_URI"`
	MongoDBHost       string `env:"MONGO_HOST"`
	MongoDBName       string `env:"MONGO_NAME"`
	MongoDBUser       string `env:"MONGO_USER"`
	MongoDBPassword   string `env:"MONGO_PASSWORD"`
	MongoDBPort       string `env:"MONGO_PORT"`
	MongoDBParameters string `env:"MONGO_PARAMETERS"`
	MongoMaxPoolSize  int    `env:"MONGO_MAX_POOL_SIZE"`
	// RabbitMQ
	RabbitURI                     string `env:"RABBITMQ_URI"`
	RabbitMQHost                  string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost              string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP              string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser                  string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass                  string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQHealthCheckURL        string `env:"RABBITMQ_HEALTH_CHECK_URL"`
	RabbitMQSchemaRefreshExchange string `env:"RABBITMQ_SCHEMA_REFRESH_EXCHANGE"`
	RabbitMQSchemaRefreshKey      string `env:"RABBITMQ_SCHEMA_REFRESH_KEY"`
	// Redis
	RedisHost             string `env:"REDIS_HOST"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB"`
	RedisProtocol         int    `env:"REDIS_PROTOCOL"`
	RedisMasterName       string `env:"REDIS_MASTER_NAME"`
	RedisTLS              bool   `env:"REDIS_TLS"`
	RedisCACert           string `env:"REDIS_CA_CERT"`
	SchemaCacheTTLSeconds int    `env:"SCHEMA_CACHE_TTL_SECONDS"`
	// External data sources
	ConnectionTimeoutSeconds int `env:"DATASOURCE_CONNECTION_TIMEOUT_SECONDS"`
	QueryTimeoutSeconds      int `env:"DATASOURCE_QUERY_TIMEOUT_SECONDS"`
	SchemaTimeoutSeconds     int `env:"DATASOURCE_SCHEMA_TIMEOUT_SECONDS"`
	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	CORSAllowedMethods string `env:"CORS_ALLOWED_METHODS"`
	CORSAllowedHeaders string `env:"CORS_ALLOWED_HEADERS"`
	// Rate limiting. RATE_LIMIT_ENABLED accepts "true" or "false"; empty keeps the default.
	RateLimitEnabled   string `env:"RATE_LIMIT_ENABLED"`
	RateLimitGlobal    int    `env:"RATE_LIMIT_GLOBAL_MAX"`
	RateLimitRemote    int    `env:"RATE_LIMIT_REMOTE_MAX"`
	RateLimitWrite     int    `env:"RATE_LIMIT_WRITE_MAX"`
	RateLimitWindowSec int    `env:"RATE_LIMIT_WINDOW_SEC"`
}

// Validate checks required fields and bounds, reporting every problem at once.
func (cfg *Config) Validate() error {
	var problems []string

	required := []struct {
		value string
		env   string
	}{
		{cfg.ServerAddress, "SERVER_ADDRESS"},
		{cfg.MongoDBHost, "MONGO_HOST"},
		{cfg.MongoDBName, "MONGO_NAME"},
		{cfg.RabbitMQHost, "RABBITMQ_HOST"},
		{cfg.RabbitMQPortAMQP, "RABBITMQ_PORT_AMQP"},
		{cfg.RabbitMQUser, "RABBITMQ_DEFAULT_USER"},
		{cfg.RabbitMQPass, "RABBITMQ_DEFAULT_PASS"},
		{cfg.RedisHost, "REDIS_HOST"},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.env+" is required")
		}
	}

	if cfg.ServerAddress != "" && pkg.ValidateServerAddress(cfg.ServerAddress) == "" {
		problems = append(problems, "SERVER_ADDRESS must be in the form <host>:<port>")
	}

	if cfg.MongoMaxPoolSize < 0 || cfg.MongoMaxPoolSize > constant.MongoMaxPoolSizeUpperBound {
		problems = append(problems, fmt.Sprintf("MONGO_MAX_POOL_SIZE must be between 0 and %d", constant.MongoMaxPoolSizeUpperBound))
	}

	if cfg.ConnectionTimeoutSeconds < 0 || cfg.QueryTimeoutSeconds < 0 || cfg.SchemaTimeoutSeconds < 0 || cfg.SchemaCacheTTLSeconds < 0 {
		problems = append(problems, "timeouts and TTLs must not be negative")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.RateLimitEnabled)) {
	case "", "true", "false":
	default:
		problems = append(problems, "RATE_LIMIT_ENABLED must be true or false")
	}

	limits := []struct {
		value int
		upper int
		env   string
	}{
		{cfg.RateLimitGlobal, constant.RateLimitMaxGlobal, "RATE_LIMIT_GLOBAL_MAX"},
		{cfg.RateLimitRemote, constant.RateLimitMaxRemote, "RATE_LIMIT_REMOTE_MAX"},
		{cfg.RateLimitWrite, constant.RateLimitMaxWrite, "RATE_LIMIT_WRITE_MAX"},
	}

	for _, l := range limits {
		if l.value < 0 || l.value > l.upper {
			problems = append(problems, fmt.Sprintf("%s must be between 0 and %d", l.env, l.upper))
		}
	}

	if cfg.RateLimitWindowSec < 0 {
		problems = append(problems, "RATE_LIMIT_WINDOW_SEC must not be negative")
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

	if cfg.QueryTimeoutSeconds > 0 {
		opts.QueryTimeout = time.Duration(cfg.QueryTimeoutSeconds) * time.Second
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

func (cfg *Config) schemaRefreshRoute() (exchange, key string) {
	exchange, key = cfg.RabbitMQSchemaRefreshExchange, cfg.RabbitMQSchemaRefreshKey

	if exchange == "" {
		exchange = constant.SchemaRefreshExchange
	}

	if key == "" {
		key = constant.SchemaRefreshRoutingKey
	}

	return exchange, key
}

func (cfg *Config) corsConfig() in.CORSConfig {
	return in.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: cfg.CORSAllowedMethods,
		AllowedHeaders: cfg.CORSAllowedHeaders,
	}
}

// rateLimitConfig fills zero values with the defaults. Storage is attached by the caller.
func (cfg *Config) rateLimitConfig() in.RateLimitConfig {
	rl := in.RateLimitConfig{
		Enabled:   constant.RateLimitDefaultEnabled,
		GlobalMax: constant.RateLimitDefaultGlobalMax,
		RemoteMax: constant.RateLimitDefaultRemoteMax,
		WriteMax:  constant.RateLimitDefaultWriteMax,
		Window:    constant.RateLimitDefaultWindow,
	}

	if v := strings.ToLower(strings.TrimSpace(cfg.RateLimitEnabled)); v != "" {
		rl.Enabled = v == "true"
	}

	if cfg.RateLimitGlobal > 0 {
		rl.GlobalMax = cfg.RateLimitGlobal
	}

	if cfg.RateLimitRemote > 0 {
		rl.RemoteMax = cfg.RateLimitRemote
	}

	if cfg.RateLimitWrite > 0 {
		rl.WriteMax = cfg.RateLimitWrite
	}

	if cfg.RateLimitWindowSec > 0 {
		rl.Window = time.Duration(cfg.RateLimitWindowSec) * time.Second
	}

	return rl
}
