// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"strings"
)

// Descriptor identifies one external database: engine type plus connection parameters.
// Required parameters are checked by MissingFields so a connection test can report them.
//
// swagger:model Descriptor
// @Description Descriptor carries the connection parameters of a data source.
type Descriptor struct {
	Type              EngineType     `json:"type" validate:"max=32" example:"postgresql"`
	Host              string         `json:"host" validate:"max=255" example:"localhost"`
	Port              int            `json:"port,omitempty" validate:"gte=0,lte=65535" example:"5432"`
	Database          string         `json:"database" validate:"max=255" example:"analytics"`
	Username          string         `json:"username,omitempty" validate:"max=255" example:"reader"`
	Password          string         `json:"password,omitempty" validate:"max=1024"`
	Schema            string         `json:"schema,omitempty" validate:"max=255" example:"public"`
	SSL               bool           `json:"ssl,omitempty"`
	ConnectionOptions map[string]any `json:"connectionOptions,omitempty"`
} // @name Descriptor

// PortOr returns the declared port, or fallback when none was given.
func (d Descriptor) PortOr(fallback int) int {
	if d.Port > 0 {
		return d.Port
	}

	return fallback
}

// MissingFields lists the connection parameters every engine needs and d lacks.
func (d Descriptor) MissingFields() []string {
	var missing []string

	if strings.TrimSpace(string(d.Type)) == "" {
		missing = append(missing, "type")
	}

	if strings.TrimSpace(d.Host) == "" {
		missing = append(missing, "host")
	}

	if strings.TrimSpace(d.Database) == "" {
		missing = append(missing, "database")
	}

	return missing
}
