// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mongoDescriptor() model.Descriptor {
	return model.Descriptor{
		Type:     model.EngineMongoDB,
		Host:     "mongo.internal",
		Database: "shop",
		Username: "reader",
		Password: "secret",
	}
}

// mockEngine serves mt.Client and counts how many times it was released.
func mockEngine(mt *mtest.T) (*Engine, *int) {
	releases := 0

	engine := NewEngine(WithConnector(func(_ context.Context, uri string) (*mongo.Client, ReleaseFunc, error) {
		assert.Contains(mt, uri, "mongo.internal:27017")

		return mt.Client, func(context.Context) error {
			releases++
			return nil
		}, nil
	}))

	return engine, &releases
}

func TestBuildURI(t *testing.T) {
	uri, err := BuildURI(model.Descriptor{
		Host: "mongo.internal", Port: 27018, Database: "shop",
		Username: "reader", Password: "p@ss", SSL: true,
		ConnectionOptions: map[string]any{"authSource": "admin", "tls": "false"},
	})
	require.NoError(t, err)

	u, err := url.Parse(uri)
	require.NoError(t, err)

	password, _ := u.User.Password()

	assert.Equal(t, "mongodb", u.Scheme)
	assert.Equal(t, "mongo.internal:27018", u.Host)
	assert.Equal(t, "/shop", u.Path)
	assert.Equal(t, "reader", u.User.Username())
	assert.Equal(t, "p@ss", password)
	assert.Equal(t, "true", u.Query().Get("tls"))
	assert.Equal(t, "admin", u.Query().Get("authSource"))

	uri, err = BuildURI(model.Descriptor{Host: "localhost", Database: "shop"})
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017/shop", uri)

	_, err = BuildURI(model.Descriptor{Database: "shop"})
	assert.ErrorIs(t, err, ErrMissingHost)
}

func TestEngine_Probe(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports the collection count", func(mt *mtest.T) {
		engine, releases := mockEngine(mt)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "shop.$cmd.listCollections", mtest.FirstBatch,
				bson.D{{Key: "name", Value: "orders"}},
				bson.D{{Key: "name", Value: "customers"}},
			),
		)

		info, err := engine.Probe(context.Background(), mongoDescriptor())

		require.NoError(mt, err)
		require.NotNil(mt, info.CollectionsCount)
		assert.Equal(mt, 2, *info.CollectionsCount)
		assert.Equal(mt, "MongoDB", info.DatabaseType)
		assert.Nil(mt, info.Timestamp)
		assert.Equal(mt, 1, *releases)
	})

	mt.Run("ping failure is a connection error and still releases", func(mt *mtest.T) {
		engine, releases := mockEngine(mt)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    18,
			Message: "Authentication failed.",
		}))

		_, err := engine.Probe(context.Background(), mongoDescriptor())

		var connErr pkg.ConnectionError
		require.ErrorAs(mt, err, &connErr)
		assert.Contains(mt, err.Error(), "Authentication failed")
		assert.Equal(mt, 1, *releases)
	})
}

func TestEngine_Probe_ConnectFailure(t *testing.T) {
	dialErr := errors.New("server selection timeout")

	engine := NewEngine(WithConnector(func(context.Context, string) (*mongo.Client, ReleaseFunc, error) {
		return nil, nil, dialErr
	}))

	_, err := engine.Probe(context.Background(), mongoDescriptor())

	var connErr pkg.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.ErrorIs(t, err, dialErr)
}

func TestEngine_Label(t *testing.T) {
	assert.Equal(t, "MongoDB", NewEngine().Label())
}
