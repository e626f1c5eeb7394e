// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package postgres

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/sqldb"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // Registers the "pgx" driver with database/sql via init() – required for sql.Open("pgx", ...)
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// ErrMissingHost is returned when a descriptor carries no host.
var ErrMissingHost = errors.New("host is required")

// Dialect is the PostgreSQL flavour of sqldb.Dialect.
type Dialect struct{}

var _ sqldb.Dialect = Dialect{}

// NewEngine returns the PostgreSQL engine.
func NewEngine(opts ...sqldb.Option) *sqldb.Engine {
	return sqldb.NewEngine(Dialect{}, opts...)
}

func (Dialect) DriverName() string { return DriverName }

func (Dialect) Label() string { return constant.LabelPostgreSQL }

func (Dialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Dollar }

// DSN renders a postgres:// URL. A schema becomes the search_path and extra
// connection options become query parameters unless they collide with ours.
func (Dialect) DSN(d model.Descriptor, connectTimeout time.Duration) (string, error) {
	if d.Host == "" {
		return "", ErrMissingHost
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.PortOr(constant.DefaultPostgresPort))),
		Path:   "/" + d.Database,
	}

	if d.Username != "" {
		u.User = url.UserPassword(d.Username, d.Password)
	}

	query := url.Values{}

	if d.SSL {
		query.Set("sslmode", "require")
	} else {
		query.Set("sslmode", "disable")
	}

	seconds := int(math.Ceil(connectTimeout.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	query.Set("connect_timeout", strconv.Itoa(seconds))

	if d.Schema != "" {
		query.Set("search_path", d.Schema)
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

func (Dialect) RedactDSN(dsn string) string {
	return pkg.RedactConnectionString(dsn)
}

// TableSchema is the declared schema, or public.
func (Dialect) TableSchema(d model.Descriptor) string {
	if d.Schema != "" {
		return d.Schema
	}

	return constant.DefaultPostgresSchema
}

func (d Dialect) ReportedSchema(descriptor model.Descriptor) string {
	return d.TableSchema(descriptor)
}
