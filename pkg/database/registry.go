// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package database

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/model"
)

// ErrNilEngine is returned when registering a nil engine.
var ErrNilEngine = errors.New("engine must not be nil")

// Registry maps engine types to their implementation.
type Registry struct {
	mu      sync.RWMutex
	engines map[model.EngineType]Engine
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[model.EngineType]Engine),
	}
}

// Register adds the engine serving engineType. Each type can be registered once.
func (r *Registry) Register(engineType model.EngineType, engine Engine) error {
	if engine == nil {
		return fmt.Errorf("registering %s: %w", engineType, ErrNilEngine)
	}

	if !engineType.IsDeclared() {
		return fmt.Errorf("registering %s: engine type is not declared", engineType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[engineType]; exists {
		return fmt.Errorf("engine %s already registered", engineType)
	}

	r.engines[engineType] = engine

	return nil
}

// Lookup returns the engine for engineType, or an UnsupportedEngineError.
func (r *Registry) Lookup(engineType model.EngineType) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engine, ok := r.engines[engineType]
	if !ok {
		return nil, pkg.NewUnsupportedEngineError(string(engineType))
	}

	return engine, nil
}

// Types lists the registered engine types in name order.
func (r *Registry) Types() []model.EngineType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]model.EngineType, 0, len(r.engines))
	for t := range r.engines {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}
