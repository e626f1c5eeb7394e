// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// MongoDB collection names.
const (
	MongoCollectionDataSource = "data_sources"
)

// Document engine schema inference.
const (
	// MongoSchemaSampleSize is the number of documents sampled per collection to infer fields.
	MongoSchemaSampleSize = 5

	// MongoUUIDByteLength is the byte length of a UUID value in MongoDB Binary format.
	MongoUUIDByteLength = 16
)

// Runtime type tags reported for document values.
const (
	BSONTypeString    = "string"
	BSONTypeNumber    = "number"
	BSONTypeBoolean   = "boolean"
	BSONTypeObject    = "object"
	BSONTypeArray     = "array"
	BSONTypeNull      = "null"
	BSONTypeObjectID  = "objectId"
	BSONTypeDate      = "date"
	BSONTypeBinary    = "binary"
	BSONTypeTimestamp = "timestamp"
	BSONTypeUnknown   = "unknown"
)

// Document query operations.
const (
	MongoOperationFind      = "find"
	MongoOperationFindOne   = "findOne"
	MongoOperationAggregate = "aggregate"
)

// MongoDB index operation timeouts.
const (
	// MongoIndexCreateTimeout is the maximum time allowed for creating indexes.
	MongoIndexCreateTimeout = 60 * time.Second
)

// MongoDB pool configuration constant.
const (
	// MongoMaxPoolSizeUpperBound is the maximum allowed value for MongoDB connection pool size configuration.
	MongoMaxPoolSizeUpperBound = 10000

	// MongoDefaultMaxPoolSize is the default connection pool size when MONGO_MAX_POOL_SIZE is not set or zero.
	MongoDefaultMaxPoolSize = 100
)
