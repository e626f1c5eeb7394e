// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package database

import (
	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/mongodb"
	"github.com/LerianStudio/datagage/pkg/mysql"
	"github.com/LerianStudio/datagage/pkg/postgres"
)

// NewDefaultRegistry registers the implemented engines: postgresql, mysql and mongodb.
// The other declared types stay unregistered and resolve to UnsupportedEngineError.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Registration of distinct declared types on an empty registry cannot fail.
	_ = r.Register(model.EnginePostgreSQL, postgres.NewEngine())
	_ = r.Register(model.EngineMySQL, mysql.NewEngine())
	_ = r.Register(model.EngineMongoDB, mongodb.NewEngine())

	return r
}
