// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/database"
	"github.com/LerianStudio/datagage/pkg/mongodb/datasource"
	"github.com/LerianStudio/datagage/pkg/redis"
)

// UseCase refreshes cached schemas of stored data sources.
type UseCase struct {
	// DataSourceRepo loads and updates data-source records.
	DataSourceRepo datasource.Repository

	// DataSourceService introspects the external database.
	DataSourceService database.DataSourceService

	// SchemaCache receives the refreshed schema.
	SchemaCache redis.SchemaStore

	// CircuitBreakerManager guards each data source against repeated connection faults.
	CircuitBreakerManager *pkg.CircuitBreakerManager
}
