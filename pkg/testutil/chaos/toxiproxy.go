// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package chaos puts a Toxiproxy container between the integration suites and
// their dependencies so network faults can be injected on demand.
package chaos

import (
	"context"
	"fmt"

	"github.com/LerianStudio/datagage/pkg/testutil/containers"

	toxiproxy "github.com/Shopify/toxiproxy/v2/client"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// ToxiproxyImage is the Docker image for the Toxiproxy container.
	ToxiproxyImage = "ghcr.io/shopify/toxiproxy:2.9.0"

	apiPort nat.Port = "8474/tcp"
)

// Toxiproxy holds the container and its API client.
type Toxiproxy struct {
	Container testcontainers.Container
	Client    *toxiproxy.Client
	Host      string
}

// StartToxiproxy starts Toxiproxy on net. proxyPorts lists the listen ports the
// proxies will use; they are exposed up front since ports cannot be added later.
func StartToxiproxy(ctx context.Context, net *containers.Network, proxyPorts ...nat.Port) (*Toxiproxy, error) {
	exposed := []string{string(apiPort)}
	for _, p := range proxyPorts {
		exposed = append(exposed, string(p))
	}

	req := testcontainers.ContainerRequest{
		Image:        ToxiproxyImage,
		ExposedPorts: exposed,
		Networks:     []string{net.Name},
		NetworkAliases: map[string][]string{
			net.Name: {"toxiproxy"},
		},
		WaitingFor: wait.ForHTTP("/version").WithPort(apiPort),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start toxiproxy container: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("get toxiproxy host: %w", err)
	}

	mapped, err := ctr.MappedPort(ctx, apiPort)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("get toxiproxy mapped port: %w", err)
	}

	return &Toxiproxy{
		Container: ctr,
		Client:    toxiproxy.NewClient(fmt.Sprintf("%s:%s", host, mapped.Port())),
		Host:      host,
	}, nil
}

// Proxy creates a proxy listening on port inside the container and forwarding
// to upstream (alias:port on the shared network). It returns the host-side endpoint.
func (t *Toxiproxy) Proxy(ctx context.Context, name string, port nat.Port, upstream string) (*toxiproxy.Proxy, containers.Endpoint, error) {
	proxy, err := t.Client.CreateProxy(name, "0.0.0.0:"+port.Port(), upstream)
	if err != nil {
		return nil, containers.Endpoint{}, fmt.Errorf("create proxy %s: %w", name, err)
	}

	mapped, err := t.Container.MappedPort(ctx, port)
	if err != nil {
		return nil, containers.Endpoint{}, fmt.Errorf("get mapped port for proxy %s: %w", name, err)
	}

	return proxy, containers.Endpoint{Host: t.Host, Port: mapped.Port()}, nil
}

// Terminate stops and removes the Toxiproxy container.
func (t *Toxiproxy) Terminate(ctx context.Context) error {
	if t == nil || t.Container == nil {
		return nil
	}

	return t.Container.Terminate(ctx)
}

// Cut disables the proxy, refusing every new connection.
func Cut(proxy *toxiproxy.Proxy) error {
	proxy.Enabled = false

	return proxy.Save()
}

// Restore re-enables the proxy.
func Restore(proxy *toxiproxy.Proxy) error {
	proxy.Enabled = true

	return proxy.Save()
}

// InjectLatency delays every downstream packet by latencyMs.
func InjectLatency(proxy *toxiproxy.Proxy, latencyMs int) error {
	_, err := proxy.AddToxic("latency_downstream", "latency", "downstream", 1.0, toxiproxy.Attributes{
		"latency": latencyMs,
	})
	if err != nil {
		return fmt.Errorf("add latency toxic to %s: %w", proxy.Name, err)
	}

	return nil
}

// RemoveAllToxics restores normal traffic on proxy.
func RemoveAllToxics(proxy *toxiproxy.Proxy) error {
	toxics, err := proxy.Toxics()
	if err != nil {
		return fmt.Errorf("list toxics for %s: %w", proxy.Name, err)
	}

	for _, toxic := range toxics {
		if err := proxy.RemoveToxic(toxic.Name); err != nil {
			return fmt.Errorf("remove toxic %s from %s: %w", toxic.Name, proxy.Name, err)
		}
	}

	return nil
}
