// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import "time"

// ConnectionInfo is the liveness marker returned by a successful probe.
type ConnectionInfo struct {
	Timestamp        *time.Time `json:"timestamp,omitempty"`
	CollectionsCount *int       `json:"collections_count,omitempty"`
	DatabaseType     string     `json:"database_type" example:"PostgreSQL"`
}

// ConnectionResult is the tagged outcome of a connection test. It is never an error.
//
// swagger:model ConnectionResult
// @Description ConnectionResult reports whether a data source is reachable.
type ConnectionResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message" example:"Connection successful"`
	Data    *ConnectionInfo `json:"data,omitempty"`
} // @name ConnectionResult
