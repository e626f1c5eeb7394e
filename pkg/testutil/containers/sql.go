// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package containers

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresPort nat.Port = "5432/tcp"
	MySQLPort    nat.Port = "3306/tcp"
)

// SQLContainer is a relational database reachable at Addr with the shared credentials.
type SQLContainer struct {
	testcontainers.Container
	Addr Endpoint
}

// StartPostgres runs PostgreSQL with DatabaseName owned by DatabaseUser.
func StartPostgres(ctx context.Context, net *Network) (*SQLContainer, error) {
	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        PostgresImage,
			ExposedPorts: []string{string(PostgresPort)},
			Env: map[string]string{
				"POSTGRES_DB":       DatabaseName,
				"POSTGRES_USER":     DatabaseUser,
				"POSTGRES_PASSWORD": DatabasePass,
			},
			// The entrypoint restarts the server once after init; wait for the second start.
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(PostgresPort),
			).WithDeadline(startupTimeout),
		},
		Started: true,
	}

	return startSQL(ctx, req, net, "postgres", PostgresPort)
}

// StartMySQL runs MySQL with DatabaseName granted to DatabaseUser.
func StartMySQL(ctx context.Context, net *Network) (*SQLContainer, error) {
	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        MySQLImage,
			ExposedPorts: []string{string(MySQLPort)},
			Env: map[string]string{
				"MYSQL_DATABASE":      DatabaseName,
				"MYSQL_USER":          DatabaseUser,
				"MYSQL_PASSWORD":      DatabasePass,
				"MYSQL_ROOT_PASSWORD": DatabasePass,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("port: 3306  MySQL Community Server"),
				wait.ForListeningPort(MySQLPort),
			).WithDeadline(startupTimeout),
		},
		Started: true,
	}

	return startSQL(ctx, req, net, "mysql", MySQLPort)
}

func startSQL(ctx context.Context, req testcontainers.GenericContainerRequest, net *Network, alias string, port nat.Port) (*SQLContainer, error) {
	if err := withNetwork(net, alias)(&req); err != nil {
		return nil, err
	}

	ctr, err := testcontainers.GenericContainer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start %s container: %w", alias, err)
	}

	ep, err := endpoint(ctx, ctr, port)
	if err != nil {
		_ = ctr.Terminate(ctx)

		return nil, fmt.Errorf("%s: %w", alias, err)
	}

	return &SQLContainer{Container: ctr, Addr: ep}, nil
}
