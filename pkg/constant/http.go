// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

// HTTP Pagination Defaults
const (
	DefaultPaginationLimit    = 10
	DefaultPaginationPage     = 1
	DefaultMaxPaginationLimit = 100
)

// Status values returned by the connection test endpoints.
const (
	ResponseStatusSuccess = "success"
	ResponseStatusError   = "error"
)

// Sort orders accepted on list endpoints.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)
