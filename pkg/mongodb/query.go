// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// ErrInvalidFilter is returned when the filter slot does not fit the operation.
var ErrInvalidFilter = errors.New("invalid filter")

// Run executes a find, findOne or aggregate against one collection.
// An empty operation name is treated as find.
func (e *Engine) Run(ctx context.Context, descriptor model.Descriptor, query model.Query) (*model.Result, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	document := query.Document
	if document == nil {
		parsed, err := model.ParseDocumentQuery(query.SQL)
		if err != nil {
			return nil, pkg.NewQueryError(descriptor.Type.String(), err)
		}

		document = parsed
	}

	operation := document.Operation
	if operation == "" {
		operation = constant.MongoOperationFind
	}

	switch operation {
	case constant.MongoOperationFind, constant.MongoOperationFindOne, constant.MongoOperationAggregate:
	default:
		return nil, pkg.NewUnsupportedOperationError(descriptor.Type.String(), operation)
	}

	s, err := e.open(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	defer s.close(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.run")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.collection", document.Collection),
		attribute.String("app.request.operation", operation),
	)

	coll := s.db.Collection(document.Collection)

	var docs []bson.D

	switch operation {
	case constant.MongoOperationFind:
		docs, err = find(ctx, coll, document)
	case constant.MongoOperationFindOne:
		docs, err = findOne(ctx, coll, document)
	case constant.MongoOperationAggregate:
		docs, err = aggregate(ctx, coll, document)
	}

	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to run document query", err)

		return nil, pkg.NewQueryError(descriptor.Type.String(), err)
	}

	logger.Infof("MongoDB %s on %s returned %d documents", operation, document.Collection, len(docs))

	return toResult(docs), nil
}

func find(ctx context.Context, coll *mongo.Collection, q *model.DocumentQuery) ([]bson.D, error) {
	filter, err := filterDocument(q.Filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find()

	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}

	if limit, ok := intOption(q.Options, "limit"); ok {
		opts.SetLimit(limit)
	}

	if skip, ok := intOption(q.Options, "skip"); ok {
		opts.SetSkip(skip)
	}

	if sortSpec, ok := q.Options["sort"]; ok {
		opts.SetSort(sortDocument(sortSpec))
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	docs := make([]bson.D, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func findOne(ctx context.Context, coll *mongo.Collection, q *model.DocumentQuery) ([]bson.D, error) {
	filter, err := filterDocument(q.Filter)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne()

	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}

	if skip, ok := intOption(q.Options, "skip"); ok {
		opts.SetSkip(skip)
	}

	if sortSpec, ok := q.Options["sort"]; ok {
		opts.SetSort(sortDocument(sortSpec))
	}

	var doc bson.D

	if err := coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []bson.D{}, nil
		}

		return nil, err
	}

	return []bson.D{doc}, nil
}

// aggregate reads the stage pipeline from the filter slot.
func aggregate(ctx context.Context, coll *mongo.Collection, q *model.DocumentQuery) ([]bson.D, error) {
	pipeline := make([]any, 0)

	switch stages := q.Filter.(type) {
	case nil:
	case []any:
		pipeline = stages
	default:
		return nil, fmt.Errorf("%w: aggregate expects a stage array, got %T", ErrInvalidFilter, q.Filter)
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	docs := make([]bson.D, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func filterDocument(filter any) (any, error) {
	switch f := filter.(type) {
	case nil:
		return bson.D{}, nil
	case map[string]any:
		return f, nil
	default:
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrInvalidFilter, filter)
	}
}

func intOption(opts map[string]any, key string) (int64, bool) {
	raw, ok := opts[key]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// sortDocument accepts {"field": 1} (keys applied in name order) or
// [{"a": 1}, {"b": -1}] (applied in array order).
func sortDocument(raw any) bson.D {
	sortSpec := bson.D{}

	switch s := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			sortSpec = append(sortSpec, bson.E{Key: k, Value: s[k]})
		}
	case []any:
		for _, item := range s {
			if m, ok := item.(map[string]any); ok {
				sortSpec = append(sortSpec, sortDocument(m)...)
			}
		}
	}

	return sortSpec
}

// toResult normalizes documents. Fields describe the first document only.
func toResult(docs []bson.D) *model.Result {
	rows := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, documentToMap(doc))
	}

	fields := make([]model.Field, 0)

	if len(docs) > 0 {
		for _, elem := range docs[0] {
			fields = append(fields, model.Field{Name: elem.Key, Type: typeTag(elem.Value)})
		}
	}

	return model.NewResult(rows, fields)
}
