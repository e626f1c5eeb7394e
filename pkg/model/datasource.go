// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// CreateDataSourceInput is the payload to register a data source.
//
// swagger:model CreateDataSourceInput
// @Description CreateDataSourceInput is the input payload to register a data source.
type CreateDataSourceInput struct {
	Name              string         `json:"name" validate:"required,max=100" example:"Analytics warehouse"`
	Description       string         `json:"description,omitempty" validate:"max=500" example:"Reporting replica"`
	Type              EngineType     `json:"type" validate:"required,enginetype" example:"postgresql"`
	Host              string         `json:"host" validate:"required,max=255" example:"localhost"`
	Port              int            `json:"port,omitempty" validate:"gte=0,lte=65535" example:"5432"`
	Database          string         `json:"database" validate:"required,max=255" example:"analytics"`
	Username          string         `json:"username,omitempty" validate:"max=255" example:"reader"`
	Password          string         `json:"password,omitempty" validate:"max=1024"`
	Schema            string         `json:"schema,omitempty" validate:"max=255" example:"public"`
	SSL               bool           `json:"ssl,omitempty"`
	ConnectionOptions map[string]any `json:"connectionOptions,omitempty"`
} // @name CreateDataSourceInput

// Descriptor returns the connection parameters of the input.
func (in CreateDataSourceInput) Descriptor() Descriptor {
	return Descriptor{
		Type:              in.Type,
		Host:              in.Host,
		Port:              in.Port,
		Database:          in.Database,
		Username:          in.Username,
		Password:          in.Password,
		Schema:            in.Schema,
		SSL:               in.SSL,
		ConnectionOptions: in.ConnectionOptions,
	}
}

// UpdateDataSourceInput is the partial payload to change a data source.
// Absent fields keep their stored value; an absent password keeps the stored password.
//
// swagger:model UpdateDataSourceInput
// @Description UpdateDataSourceInput is the input payload to update a data source.
type UpdateDataSourceInput struct {
	Name              *string        `json:"name,omitempty" validate:"omitempty,max=100" example:"Analytics warehouse"`
	Description       *string        `json:"description,omitempty" validate:"omitempty,max=500" example:"Reporting replica"`
	Type              *EngineType    `json:"type,omitempty" validate:"omitempty,enginetype" example:"mysql"`
	Host              *string        `json:"host,omitempty" validate:"omitempty,max=255" example:"localhost"`
	Port              *int           `json:"port,omitempty" validate:"omitempty,gte=0,lte=65535" example:"3306"`
	Database          *string        `json:"database,omitempty" validate:"omitempty,max=255" example:"analytics"`
	Username          *string        `json:"username,omitempty" validate:"omitempty,max=255" example:"reader"`
	Password          *string        `json:"password,omitempty" validate:"omitempty,max=1024"`
	Schema            *string        `json:"schema,omitempty" validate:"omitempty,max=255" example:"public"`
	SSL               *bool          `json:"ssl,omitempty"`
	ConnectionOptions map[string]any `json:"connectionOptions,omitempty"`
} // @name UpdateDataSourceInput

// ChangesConnection reports whether applying the input alters how the data source is reached.
func (in UpdateDataSourceInput) ChangesConnection() bool {
	return in.Type != nil || in.Host != nil || in.Port != nil || in.Database != nil ||
		in.Username != nil || in.Password != nil || in.Schema != nil || in.SSL != nil ||
		in.ConnectionOptions != nil
}

// Apply returns d with the connection fields of the input applied.
func (in UpdateDataSourceInput) Apply(d Descriptor) Descriptor {
	if in.Type != nil {
		d.Type = *in.Type
	}

	if in.Host != nil {
		d.Host = *in.Host
	}

	if in.Port != nil {
		d.Port = *in.Port
	}

	if in.Database != nil {
		d.Database = *in.Database
	}

	if in.Username != nil {
		d.Username = *in.Username
	}

	if in.Password != nil && *in.Password != "" {
		d.Password = *in.Password
	}

	if in.Schema != nil {
		d.Schema = *in.Schema
	}

	if in.SSL != nil {
		d.SSL = *in.SSL
	}

	if in.ConnectionOptions != nil {
		d.ConnectionOptions = in.ConnectionOptions
	}

	return d
}

// ConnectionTestResponse is the body returned by the connection test endpoints.
//
// swagger:model ConnectionTestResponse
// @Description ConnectionTestResponse reports the outcome of a connection test.
type ConnectionTestResponse struct {
	Status  string          `json:"status" example:"success"`
	Message string          `json:"message" example:"Connection successful"`
	Data    *ConnectionInfo `json:"data,omitempty"`
} // @name ConnectionTestResponse

// NewConnectionTestResponse maps a ConnectionResult to its response body.
func NewConnectionTestResponse(result ConnectionResult, successStatus, errorStatus string) ConnectionTestResponse {
	status := errorStatus
	if result.Success {
		status = successStatus
	}

	return ConnectionTestResponse{
		Status:  status,
		Message: result.Message,
		Data:    result.Data,
	}
}
