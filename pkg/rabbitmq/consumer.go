// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"sync"
)

// QueueHandlerFunc handles one delivery body from a queue. A returned error
// decides between a retry and dead-lettering, see pkg.IsBusinessError.
type QueueHandlerFunc func(ctx context.Context, body []byte) error

// ConsumerRepository binds handlers to queues and runs them until ctx ends.
//
//go:generate mockgen --destination=consumer.mock.go --package=rabbitmq . ConsumerRepository
type ConsumerRepository interface {
	Register(queueName string, handler QueueHandlerFunc)
	RunConsumers(ctx context.Context, wg *sync.WaitGroup) error
}
