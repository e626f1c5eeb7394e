// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package containers

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoDBContainer wraps a MongoDB testcontainer with connection info.
type MongoDBContainer struct {
	*mongodb.MongoDBContainer
	Addr             Endpoint
	ConnectionString string
}

// StartMongoDB runs MongoDB with root credentials DatabaseUser/DatabasePass.
func StartMongoDB(ctx context.Context, net *Network) (*MongoDBContainer, error) {
	ctr, err := mongodb.Run(ctx,
		MongoImage,
		mongodb.WithUsername(DatabaseUser),
		mongodb.WithPassword(DatabasePass),
		withNetwork(net, "mongodb"),
	)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}

	ep, err := endpoint(ctx, ctr, "27017/tcp")
	if err != nil {
		_ = ctr.Terminate(ctx)

		return nil, fmt.Errorf("mongodb: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx)
	if err != nil {
		_ = ctr.Terminate(ctx)

		return nil, fmt.Errorf("get mongodb connection string: %w", err)
	}

	return &MongoDBContainer{
		MongoDBContainer: ctr,
		Addr:             ep,
		ConnectionString: connStr,
	}, nil
}
