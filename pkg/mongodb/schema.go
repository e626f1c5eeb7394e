// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// Introspect samples every collection to infer its fields and counts its documents.
func (e *Engine) Introspect(ctx context.Context, descriptor model.Descriptor) (*model.Schema, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	s, err := e.open(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	defer s.close(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.introspect")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.database", descriptor.Database),
	)

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list collections", err)

		return nil, pkg.NewSchemaError(descriptor.Type.String(), err)
	}

	sort.Strings(names)

	collections := make([]model.Collection, 0, len(names))

	for _, name := range names {
		collection, err := describeCollection(ctx, s.db.Collection(name))
		if err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to describe collection", err)

			return nil, pkg.NewSchemaError(descriptor.Type.String(), err)
		}

		collections = append(collections, *collection)
	}

	logger.Infof("Introspected %d MongoDB collections in %s", len(collections), descriptor.Database)

	return &model.Schema{
		Kind:        model.SchemaKindDocument,
		Database:    descriptor.Database,
		Collections: collections,
	}, nil
}

func describeCollection(ctx context.Context, coll *mongo.Collection) (*model.Collection, error) {
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetLimit(constant.MongoSchemaSampleSize))
	if err != nil {
		return nil, fmt.Errorf("error sampling collection %s: %w", coll.Name(), err)
	}

	var sample []bson.D
	if err := cursor.All(ctx, &sample); err != nil {
		return nil, fmt.Errorf("error reading sample of collection %s: %w", coll.Name(), err)
	}

	count, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error counting documents of collection %s: %w", coll.Name(), err)
	}

	return &model.Collection{
		Name:          coll.Name(),
		Fields:        inferFields(sample),
		DocumentCount: count,
	}, nil
}

// inferFields unions field names in first-seen order and collects the distinct
// types observed for each one.
func inferFields(sample []bson.D) []model.CollectionField {
	fields := make([]model.CollectionField, 0)
	index := make(map[string]int)

	for _, doc := range sample {
		for _, elem := range doc {
			tag := typeTag(elem.Value)

			i, seen := index[elem.Key]
			if !seen {
				index[elem.Key] = len(fields)
				fields = append(fields, model.CollectionField{Name: elem.Key, Types: []string{tag}})

				continue
			}

			if !slices.Contains(fields[i].Types, tag) {
				fields[i].Types = append(fields[i].Types, tag)
			}
		}
	}

	return fields
}
