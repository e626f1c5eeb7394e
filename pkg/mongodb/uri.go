// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
)

// ErrMissingHost is returned when a descriptor carries no host.
var ErrMissingHost = errors.New("host is required")

// BuildURI renders the mongodb:// connection string of a descriptor.
func BuildURI(d model.Descriptor) (string, error) {
	if d.Host == "" {
		return "", ErrMissingHost
	}

	u := &url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.PortOr(constant.DefaultMongoPort))),
		Path:   "/" + d.Database,
	}

	if d.Username != "" {
		u.User = url.UserPassword(d.Username, d.Password)
	}

	query := url.Values{}

	if d.SSL {
		query.Set("tls", "true")
	}

	for key, value := range d.ConnectionOptions {
		if query.Has(key) {
			continue
		}

		switch v := value.(type) {
		case string, bool, float64, int, int64:
			query.Set(key, fmt.Sprint(v))
		}
	}

	u.RawQuery = query.Encode()

	return u.String(), nil
}
