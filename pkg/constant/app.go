// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

const ApplicationName = "datagage"

// RedactPlaceholder is the replacement value for masked credentials in connection strings.
const RedactPlaceholder = "REDACTED"

// InvalidURIPlaceholder replaces connection strings that cannot be parsed for redaction.
const InvalidURIPlaceholder = "[invalid-uri]"

// DefaultWorkerHealthPort serves the worker liveness and readiness probes when HEALTH_PORT is unset.
const DefaultWorkerHealthPort = "4006"
