// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package containers starts the disposable databases and brokers used by the
// integration suites. Every suite is guarded by the "integration" build tag.
package containers

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
)

const (
	PostgresImage  = "postgres:16-alpine"
	MySQLImage     = "mysql:8.4"
	MongoImage     = "mongo:7"
	RedisImage     = "valkey/valkey:8"
	RabbitMQImage  = "rabbitmq:4.0-management-alpine"
	DatabaseName   = "datagage"
	DatabaseUser   = "datagage"
	DatabasePass   = "datagage-pass"
	startupTimeout = 120 * time.Second
)

// Network is a bridge network shared by containers that must reach each other by alias.
type Network struct {
	*testcontainers.DockerNetwork
}

// NewNetwork creates a throwaway bridge network.
func NewNetwork(ctx context.Context) (*Network, error) {
	net, err := network.New(ctx, network.WithDriver("bridge"))
	if err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}

	return &Network{DockerNetwork: net}, nil
}

// Endpoint is the host-side address of a container port.
type Endpoint struct {
	Host string
	Port string
}

// Address joins host and port.
func (e Endpoint) Address() string {
	return e.Host + ":" + e.Port
}

func endpoint(ctx context.Context, ctr testcontainers.Container, port nat.Port) (Endpoint, error) {
	host, err := ctr.Host(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("get host: %w", err)
	}

	mapped, err := ctr.MappedPort(ctx, port)
	if err != nil {
		return Endpoint{}, fmt.Errorf("get mapped port %s: %w", port, err)
	}

	return Endpoint{Host: host, Port: mapped.Port()}, nil
}

// withNetwork attaches the request to net under alias. A nil net leaves the default bridge.
func withNetwork(net *Network, alias string) testcontainers.CustomizeRequestOption {
	return func(req *testcontainers.GenericContainerRequest) error {
		if net == nil {
			return nil
		}

		req.Networks = append(req.Networks, net.Name)

		if req.NetworkAliases == nil {
			req.NetworkAliases = map[string][]string{}
		}

		req.NetworkAliases[net.Name] = append(req.NetworkAliases[net.Name], alias)

		return nil
	}
}

// Terminate stops ctr and ignores a nil container.
func Terminate(ctx context.Context, ctr testcontainers.Container) error {
	if ctr == nil {
		return nil
	}

	return ctr.Terminate(ctx)
}
