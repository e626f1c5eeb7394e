// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"context"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel/attribute"
)

// ReleaseFunc disconnects a client obtained from a ConnectFunc.
type ReleaseFunc func(ctx context.Context) error

// ConnectFunc opens a client for a connection string.
type ConnectFunc func(ctx context.Context, uri string) (*mongo.Client, ReleaseFunc, error)

// Option customizes an Engine.
type Option func(*Engine)

// WithConnector replaces the function used to open clients.
func WithConnector(connect ConnectFunc) Option {
	return func(e *Engine) {
		if connect != nil {
			e.connect = connect
		}
	}
}

// Engine is the MongoDB engine. Every call opens its own client and
// disconnects it before returning.
type Engine struct {
	connect ConnectFunc
}

// NewEngine returns the MongoDB engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{connect: dial}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Label returns the engine label.
func (e *Engine) Label() string {
	return constant.LabelMongoDB
}

func dial(ctx context.Context, uri string) (*mongo.Client, ReleaseFunc, error) {
	timeout := connectTimeout(ctx)

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(1).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	return client, client.Disconnect, nil
}

func connectTimeout(ctx context.Context) time.Duration {
	timeout := constant.ConnectionTimeout

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	return timeout
}

// session is one open client bound to the descriptor database.
type session struct {
	client  *mongo.Client
	db      *mongo.Database
	release ReleaseFunc
}

// close disconnects on a context detached from the caller's cancellation.
func (s *session) close(ctx context.Context) {
	logger := libCommons.NewLoggerFromContext(ctx)

	pkg.CloseQuietly(logger, "MongoDB client", func() error {
		return s.release(context.WithoutCancel(ctx))
	})
}

// open connects and pings the primary, so connection faults surface here as ConnectionError.
func (e *Engine) open(ctx context.Context, descriptor model.Descriptor) (*session, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.connect")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.host", descriptor.Host),
		attribute.String("app.request.database", descriptor.Database),
	)

	uri, err := BuildURI(descriptor)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to build connection string", err)

		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	logger.Debugf("Opening MongoDB connection to %s", pkg.RedactConnectionString(uri))

	client, release, err := e.connect(ctx, uri)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to connect", err)

		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	s := &session{client: client, db: client.Database(descriptor.Database), release: release}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		s.close(ctx)

		libOpentelemetry.HandleSpanError(&span, "Failed to ping MongoDB", err)

		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	return s, nil
}

// Probe lists the collections of the database and reports how many exist.
func (e *Engine) Probe(ctx context.Context, descriptor model.Descriptor) (*model.ConnectionInfo, error) {
	s, err := e.open(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	defer s.close(ctx)

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, pkg.NewConnectionError(descriptor.Type.String(), err)
	}

	count := len(names)

	return &model.ConnectionInfo{
		CollectionsCount: &count,
		DatabaseType:     constant.LabelMongoDB,
	}, nil
}
