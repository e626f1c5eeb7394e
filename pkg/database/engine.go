// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package database

import (
	"context"

	"github.com/LerianStudio/datagage/pkg/model"
)

// ConnectionProbe opens a short-lived connection, checks liveness and closes it.
type ConnectionProbe interface {
	Probe(ctx context.Context, descriptor model.Descriptor) (*model.ConnectionInfo, error)
}

// QueryRunner executes one query on a fresh connection and normalizes the result.
type QueryRunner interface {
	Run(ctx context.Context, descriptor model.Descriptor, query model.Query) (*model.Result, error)
}

// SchemaIntrospector reads tables and columns, or collections and inferred fields.
type SchemaIntrospector interface {
	Introspect(ctx context.Context, descriptor model.Descriptor) (*model.Schema, error)
}

// Engine is the full capability set of one database technology.
// Implementations hold no connection state between calls.
//
//go:generate mockgen --destination=engine.mock.go --package=database . Engine
type Engine interface {
	Label() string
	ConnectionProbe
	QueryRunner
	SchemaIntrospector
}

// EngineResolver selects the engine serving a type.
type EngineResolver interface {
	Lookup(engineType model.EngineType) (Engine, error)
}
