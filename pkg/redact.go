// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"net/url"
	"strings"

	"github.com/LerianStudio/datagage/pkg/constant"
)

// sensitiveParams lists query-string keys whose values are masked by RedactConnectionString.
var sensitiveParams = []string{"password", "passwd", "pwd", "secret", "token"}

// RedactConnectionString masks credentials in a connection URI.
// It replaces the userinfo and any password-like query parameter with "REDACTED"
// so the string is safe to log. Returns "[invalid-uri]" if parsing fails or the
// input is not in scheme://host form.
func RedactConnectionString(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Opaque != "" || u.Host == "" {
		return constant.InvalidURIPlaceholder
	}

	if u.User != nil {
		u.User = url.UserPassword(constant.RedactPlaceholder, constant.RedactPlaceholder)
	}

	if u.RawQuery != "" {
		q := u.Query()

		for key := range q {
			if isSensitiveParam(key) {
				q.Set(key, constant.RedactPlaceholder)
			}
		}

		u.RawQuery = q.Encode()
	}

	return u.String()
}

func isSensitiveParam(key string) bool {
	lower := strings.ToLower(key)

	for _, p := range sensitiveParams {
		if lower == p {
			return true
		}
	}

	return false
}
