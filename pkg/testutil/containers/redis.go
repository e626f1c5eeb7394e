// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package containers

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer wraps a Valkey testcontainer. Address is host:port without a scheme.
type RedisContainer struct {
	*redis.RedisContainer
	Addr Endpoint
}

// StartRedis runs a password-less Valkey server.
func StartRedis(ctx context.Context, net *Network) (*RedisContainer, error) {
	ctr, err := redis.Run(ctx, RedisImage, withNetwork(net, "redis"))
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}

	ep, err := endpoint(ctx, ctr, "6379/tcp")
	if err != nil {
		_ = ctr.Terminate(ctx)

		return nil, fmt.Errorf("redis: %w", err)
	}

	return &RedisContainer{RedisContainer: ctr, Addr: ep}, nil
}
