// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var cachedID = uuid.MustParse("2f0b7a3e-5c4d-4e8a-9b61-7d2f6a1c0e11")

func TestSchemaKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "datagage:schema:2f0b7a3e-5c4d-4e8a-9b61-7d2f6a1c0e11", SchemaKey(cachedID))
}

func TestSchemaCache_RoundTripThroughRedis(t *testing.T) {
	t.Parallel()

	repo, mr := newMiniredisRepository(t)
	cache := NewSchemaCache(repo, 5*time.Minute)
	ctx := context.Background()

	miss, err := cache.Get(ctx, cachedID)
	require.NoError(t, err)
	assert.Nil(t, miss)

	maxLen := int64(120)
	schema := &model.Schema{
		Kind:     model.SchemaKindRelational,
		Database: "analytics",
		Schema:   "public",
		Tables: []model.Table{{
			Name: "users",
			Columns: []model.Column{
				{Name: "id", Type: "integer"},
				{Name: "email", Type: "character varying", Length: &maxLen, Nullable: true},
			},
		}},
	}

	require.NoError(t, cache.Set(ctx, cachedID, schema))
	assert.Equal(t, 5*time.Minute, mr.TTL(SchemaKey(cachedID)))

	hit, err := cache.Get(ctx, cachedID)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, model.SchemaKindRelational, hit.Kind)
	require.Len(t, hit.Tables, 1)
	assert.Equal(t, "email", hit.Tables[0].Columns[1].Name)

	require.NoError(t, cache.Invalidate(ctx, cachedID))
	assert.False(t, mr.Exists(SchemaKey(cachedID)))
}

func TestSchemaCache_UndecodableEntryIsAMiss(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRedisRepository(ctrl)

	repo.EXPECT().Get(gomock.Any(), SchemaKey(cachedID)).Return("{not json", nil)

	hit, err := NewSchemaCache(repo, time.Minute).Get(context.Background(), cachedID)

	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestSchemaCache_PropagatesRedisErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := NewMockRedisRepository(ctrl)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("READONLY"))

	_, err := NewSchemaCache(repo, time.Minute).Get(context.Background(), cachedID)

	require.Error(t, err)
}

func TestNewSchemaCache_DefaultTTL(t *testing.T) {
	t.Parallel()

	cache := NewSchemaCache(NewMockRedisRepository(gomock.NewController(t)), 0)

	assert.Equal(t, constant.DefaultSchemaCacheTTL, cache.TTL())
}
