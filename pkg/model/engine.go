// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import "github.com/LerianStudio/datagage/pkg/constant"

// EngineType names the database technology a data source targets.
type EngineType string

const (
	EnginePostgreSQL    EngineType = constant.EnginePostgreSQL
	EngineMySQL         EngineType = constant.EngineMySQL
	EngineMongoDB       EngineType = constant.EngineMongoDB
	EngineSnowflake     EngineType = constant.EngineSnowflake
	EngineBigQuery      EngineType = constant.EngineBigQuery
	EngineSQLServer     EngineType = constant.EngineSQLServer
	EngineOracle        EngineType = constant.EngineOracle
	EngineRedshift      EngineType = constant.EngineRedshift
	EngineDynamoDB      EngineType = constant.EngineDynamoDB
	EngineElasticsearch EngineType = constant.EngineElasticsearch
)

// DeclaredEngineTypes lists every engine type accepted on a data source record,
// implemented or not.
var DeclaredEngineTypes = []EngineType{
	EnginePostgreSQL,
	EngineMySQL,
	EngineMongoDB,
	EngineSnowflake,
	EngineBigQuery,
	EngineSQLServer,
	EngineOracle,
	EngineRedshift,
	EngineDynamoDB,
	EngineElasticsearch,
}

// IsDeclared reports whether t is part of the accepted enumeration.
func (t EngineType) IsDeclared() bool {
	for _, declared := range DeclaredEngineTypes {
		if t == declared {
			return true
		}
	}

	return false
}

func (t EngineType) String() string {
	return string(t)
}
