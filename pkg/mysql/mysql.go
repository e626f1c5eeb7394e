// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mysql

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/sqldb"

	"github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
)

// DriverName is the database/sql driver registered by go-sql-driver.
const DriverName = "mysql"

// ErrMissingHost is returned when a descriptor carries no host.
var ErrMissingHost = errors.New("host is required")

// Dialect is the MySQL flavour of sqldb.Dialect. MySQL has no schema level
// below the database, so introspection reads the tables of the database itself.
type Dialect struct{}

var _ sqldb.Dialect = Dialect{}

// NewEngine returns the MySQL engine.
func NewEngine(opts ...sqldb.Option) *sqldb.Engine {
	return sqldb.NewEngine(Dialect{}, opts...)
}

func (Dialect) DriverName() string { return DriverName }

func (Dialect) Label() string { return constant.LabelMySQL }

func (Dialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

// DSN renders a go-sql-driver DSN. Time columns are parsed into time.Time.
func (Dialect) DSN(d model.Descriptor, connectTimeout time.Duration) (string, error) {
	if d.Host == "" {
		return "", ErrMissingHost
	}

	cfg := driver.NewConfig()
	cfg.User = d.Username
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.PortOr(constant.DefaultMySQLPort)))
	cfg.DBName = d.Database
	cfg.ParseTime = true
	cfg.Timeout = connectTimeout

	if d.SSL {
		cfg.TLSConfig = "skip-verify"
	}

	for key, value := range d.ConnectionOptions {
		switch v := value.(type) {
		case string, bool, float64, int, int64:
			if cfg.Params == nil {
				cfg.Params = make(map[string]string)
			}

			cfg.Params[key] = fmt.Sprint(v)
		}
	}

	return cfg.FormatDSN(), nil
}

// RedactDSN masks the password of a DSN.
func (Dialect) RedactDSN(dsn string) string {
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return constant.InvalidURIPlaceholder
	}

	if cfg.Passwd != "" {
		cfg.Passwd = constant.RedactPlaceholder
	}

	return cfg.FormatDSN()
}

func (Dialect) TableSchema(d model.Descriptor) string {
	return d.Database
}

func (Dialect) ReportedSchema(model.Descriptor) string {
	return ""
}
