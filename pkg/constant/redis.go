// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

const (
	// SchemaCacheKeyPrefix prefixes cached schema descriptions, keyed by data source id.
	SchemaCacheKeyPrefix = "datagage:schema"

	// DefaultSchemaCacheTTL is used when SCHEMA_CACHE_TTL_SECONDS is unset.
	DefaultSchemaCacheTTL = 10 * time.Minute
)
