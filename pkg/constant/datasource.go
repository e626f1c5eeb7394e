// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// Engine types accepted on a data source record.
const (
	EnginePostgreSQL    = "postgresql"
	EngineMySQL         = "mysql"
	EngineMongoDB       = "mongodb"
	EngineSnowflake     = "snowflake"
	EngineBigQuery      = "bigquery"
	EngineSQLServer     = "sqlserver"
	EngineOracle        = "oracle"
	EngineRedshift      = "redshift"
	EngineDynamoDB      = "dynamodb"
	EngineElasticsearch = "elasticsearch"
)

// Engine labels reported by a successful connection test.
const (
	LabelPostgreSQL = "PostgreSQL"
	LabelMySQL      = "MySQL"
	LabelMongoDB    = "MongoDB"
)

// Default ports used when a descriptor leaves the port unset.
const (
	DefaultPostgresPort = 5432
	DefaultMySQLPort    = 3306
	DefaultMongoPort    = 27017
)

// DefaultPostgresSchema is the schema introspected when none is declared.
const DefaultPostgresSchema = "public"

// Database timeouts
const (
	// ConnectionTimeout bounds a connection test end to end.
	ConnectionTimeout = 5 * time.Second

	// DefaultQueryTimeout applies to query execution when DATASOURCE_QUERY_TIMEOUT_SECONDS is unset.
	DefaultQueryTimeout = 30 * time.Second

	// DefaultSchemaTimeout applies to schema introspection when DATASOURCE_SCHEMA_TIMEOUT_SECONDS is unset.
	DefaultSchemaTimeout = 60 * time.Second
)

// Connection test messages.
const (
	ConnectionSuccessMessage   = "Connection successful"
	ConnectionFailedPrefix     = "Connection test failed: "
	UnsupportedEngineMessage   = "Unsupported database type: "
	RelationalProbeQuery       = "SELECT NOW() AS time"
	InformationSchemaBaseTable = "BASE TABLE"
)

// Circuit Breaker Configuration
const (
	CircuitBreakerMaxRequests uint32 = 3
	CircuitBreakerInterval           = 2 * time.Minute
	CircuitBreakerTimeout            = 30 * time.Second
	CircuitBreakerThreshold   uint32 = 5
)

// Circuit Breaker State Names
const (
	CircuitBreakerStateClosed   = "closed"
	CircuitBreakerStateOpen     = "open"
	CircuitBreakerStateHalfOpen = "half-open"
)

// Data source status values.
const (
	DataSourceStatusConnected    = "connected"
	DataSourceStatusFailed       = "failed"
	DataSourceStatusDisconnected = "disconnected"
)
