// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/google/uuid"
)

// SchemaStore caches introspected schemas by data source id.
//
//go:generate mockgen --destination=schema_cache.mock.go --package=redis . SchemaStore
type SchemaStore interface {
	Get(ctx context.Context, dataSourceID uuid.UUID) (*model.Schema, error)
	Set(ctx context.Context, dataSourceID uuid.UUID, schema *model.Schema) error
	Invalidate(ctx context.Context, dataSourceID uuid.UUID) error
}

// SchemaCache keeps introspected schemas of stored data sources for a bounded time.
type SchemaCache struct {
	repo RedisRepository
	ttl  time.Duration
}

var _ SchemaStore = (*SchemaCache)(nil)

// NewSchemaCache builds a cache over repo. A non-positive ttl falls back to the default.
func NewSchemaCache(repo RedisRepository, ttl time.Duration) *SchemaCache {
	if ttl <= 0 {
		ttl = constant.DefaultSchemaCacheTTL
	}

	return &SchemaCache{repo: repo, ttl: ttl}
}

// SchemaKey is the cache key of a data source schema.
func SchemaKey(dataSourceID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", constant.SchemaCacheKeyPrefix, dataSourceID)
}

// Get returns the cached schema, or nil when there is none.
// An entry that no longer decodes is treated as a miss.
func (sc *SchemaCache) Get(ctx context.Context, dataSourceID uuid.UUID) (*model.Schema, error) {
	raw, err := sc.repo.Get(ctx, SchemaKey(dataSourceID))
	if err != nil {
		return nil, err
	}

	if raw == "" {
		return nil, nil
	}

	var schema model.Schema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		libCommons.NewLoggerFromContext(ctx).Warnf("Discarding undecodable cached schema for %s: %v", dataSourceID, err)

		return nil, nil
	}

	return &schema, nil
}

// Set stores the schema of a data source.
func (sc *SchemaCache) Set(ctx context.Context, dataSourceID uuid.UUID, schema *model.Schema) error {
	raw, err := json.Marshal(schema)
	if err != nil {
		return err
	}

	return sc.repo.Set(ctx, SchemaKey(dataSourceID), string(raw), sc.ttl)
}

// Invalidate drops the cached schema of a data source.
func (sc *SchemaCache) Invalidate(ctx context.Context, dataSourceID uuid.UUID) error {
	return sc.repo.Del(ctx, SchemaKey(dataSourceID))
}

// TTL is the lifetime of a cached schema.
func (sc *SchemaCache) TTL() time.Duration {
	return sc.ttl
}
