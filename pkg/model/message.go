// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"time"

	"github.com/google/uuid"
)

// SchemaRefreshMessage asks the worker to introspect a stored data source and refresh its cached schema.
//
// @Description SchemaRefreshMessage is the payload published on the schema refresh queue.
type SchemaRefreshMessage struct {
	DataSourceID uuid.UUID `json:"dataSourceId" example:"00000000-0000-0000-0000-000000000000"`
	RequestedAt  time.Time `json:"requestedAt"`
}
