// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package datasource

import (
	"fmt"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/google/uuid"
)

// DataSource is a stored external database. The password never leaves the service.
//
// swagger:model DataSource
// @Description DataSource is a registered external database without its credentials secret.
type DataSource struct {
	ID                uuid.UUID        `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	Name              string           `json:"name" example:"Analytics warehouse"`
	Description       string           `json:"description,omitempty" example:"Reporting replica"`
	Type              model.EngineType `json:"type" example:"postgresql"`
	Host              string           `json:"host" example:"localhost"`
	Port              int              `json:"port,omitempty" example:"5432"`
	Database          string           `json:"database" example:"analytics"`
	Username          string           `json:"username,omitempty" example:"reader"`
	Password          string           `json:"-"`
	Schema            string           `json:"schema,omitempty" example:"public"`
	SSL               bool             `json:"ssl"`
	ConnectionOptions map[string]any   `json:"connectionOptions,omitempty"`
	Status            string           `json:"status" example:"connected"`
	LastSync          *time.Time       `json:"lastSync,omitempty" example:"2021-01-01T00:00:00Z"`
	CreatedAt         time.Time        `json:"createdAt" example:"2021-01-01T00:00:00Z"`
	UpdatedAt         time.Time        `json:"updatedAt" example:"2021-01-01T00:00:00Z"`
} // @name DataSource

// NewDataSource builds a connected data source from a validated input.
func NewDataSource(id uuid.UUID, in model.CreateDataSourceInput) (*DataSource, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("data source id must not be nil: %w", constant.ErrMissingRequiredFields)
	}

	if in.Name == "" {
		return nil, fmt.Errorf("data source name must not be empty: %w", constant.ErrMissingRequiredFields)
	}

	now := time.Now()

	return &DataSource{
		ID:                id,
		Name:              in.Name,
		Description:       in.Description,
		Type:              in.Type,
		Host:              in.Host,
		Port:              in.Port,
		Database:          in.Database,
		Username:          in.Username,
		Password:          in.Password,
		Schema:            in.Schema,
		SSL:               in.SSL,
		ConnectionOptions: in.ConnectionOptions,
		Status:            constant.DataSourceStatusConnected,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Descriptor returns the connection parameters of the data source.
func (ds *DataSource) Descriptor() model.Descriptor {
	return model.Descriptor{
		Type:              ds.Type,
		Host:              ds.Host,
		Port:              ds.Port,
		Database:          ds.Database,
		Username:          ds.Username,
		Password:          ds.Password,
		Schema:            ds.Schema,
		SSL:               ds.SSL,
		ConnectionOptions: ds.ConnectionOptions,
	}
}

// DataSourceMongoDBModel is the stored document of a data source.
type DataSourceMongoDBModel struct {
	ID                uuid.UUID      `bson:"_id"`
	Name              string         `bson:"name"`
	Description       string         `bson:"description"`
	Type              string         `bson:"type"`
	Host              string         `bson:"host"`
	Port              int            `bson:"port"`
	Database          string         `bson:"database"`
	Username          string         `bson:"username"`
	Password          string         `bson:"password"`
	Schema            string         `bson:"schema"`
	SSL               bool           `bson:"ssl"`
	ConnectionOptions map[string]any `bson:"connection_options,omitempty"`
	Status            string         `bson:"status"`
	LastSync          *time.Time     `bson:"last_sync"`
	CreatedAt         time.Time      `bson:"created_at"`
	UpdatedAt         time.Time      `bson:"updated_at"`
	DeletedAt         *time.Time     `bson:"deleted_at"`
}

// ToEntity converts DataSourceMongoDBModel to DataSource
func (m *DataSourceMongoDBModel) ToEntity() *DataSource {
	return &DataSource{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Type:              model.EngineType(m.Type),
		Host:              m.Host,
		Port:              m.Port,
		Database:          m.Database,
		Username:          m.Username,
		Password:          m.Password,
		Schema:            m.Schema,
		SSL:               m.SSL,
		ConnectionOptions: m.ConnectionOptions,
		Status:            m.Status,
		LastSync:          m.LastSync,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromEntity converts DataSource to DataSourceMongoDBModel
func (m *DataSourceMongoDBModel) FromEntity(ds *DataSource) {
	m.ID = ds.ID
	m.Name = ds.Name
	m.Description = ds.Description
	m.Type = ds.Type.String()
	m.Host = ds.Host
	m.Port = ds.Port
	m.Database = ds.Database
	m.Username = ds.Username
	m.Password = ds.Password
	m.Schema = ds.Schema
	m.SSL = ds.SSL
	m.ConnectionOptions = ds.ConnectionOptions
	m.Status = ds.Status
	m.LastSync = ds.LastSync
	m.CreatedAt = ds.CreatedAt
	m.UpdatedAt = ds.UpdatedAt
}
