// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// Rate Limiting Defaults
const (
	// RateLimitDefaultEnabled indicates whether rate limiting is enabled by default.
	RateLimitDefaultEnabled = true

	// RateLimitDefaultGlobalMax is the default maximum number of requests per
	// window for read endpoints.
	RateLimitDefaultGlobalMax = 100

	// RateLimitDefaultRemoteMax is the default maximum number of requests per
	// window for endpoints that open a connection to an external database.
	RateLimitDefaultRemoteMax = 20

	// RateLimitDefaultWriteMax is the default maximum number of requests per
	// window for write operations.
	RateLimitDefaultWriteMax = 50

	// RateLimitDefaultWindow is the default sliding window duration for all tiers.
	RateLimitDefaultWindow = 60 * time.Second
)

// Rate Limiting Upper Bounds
const (
	RateLimitMaxGlobal = 10000
	RateLimitMaxRemote = 1000
	RateLimitMaxWrite  = 5000
)

// RateLimitStorageTimeout bounds each Redis call made by the limiter storage.
const RateLimitStorageTimeout = 2 * time.Second
