// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package containers

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

const (
	RabbitUser     = "datagage-user"
	RabbitPassword = "datagage-pass"
)

// RabbitMQContainer wraps a RabbitMQ testcontainer with connection info.
type RabbitMQContainer struct {
	*rabbitmq.RabbitMQContainer
	Addr       Endpoint
	Management Endpoint
	AmqpURL    string
}

// StartRabbitMQ runs a broker with RabbitUser as administrator.
func StartRabbitMQ(ctx context.Context, net *Network) (*RabbitMQContainer, error) {
	ctr, err := rabbitmq.Run(ctx,
		RabbitMQImage,
		rabbitmq.WithAdminUsername(RabbitUser),
		rabbitmq.WithAdminPassword(RabbitPassword),
		withNetwork(net, "rabbitmq"),
	)
	if err != nil {
		return nil, fmt.Errorf("start rabbitmq container: %w", err)
	}

	ep, err := endpoint(ctx, ctr, "5672/tcp")
	if err != nil {
		_ = ctr.Terminate(ctx)

		return nil, fmt.Errorf("rabbitmq: %w", err)
	}

	mgmt, err := endpoint(ctx, ctr, "15672/tcp")
	if err != nil {
		_ = ctr.Terminate(ctx)

		return nil, fmt.Errorf("rabbitmq management: %w", err)
	}

	return &RabbitMQContainer{
		RabbitMQContainer: ctr,
		Addr:              ep,
		Management:        mgmt,
		AmqpURL:           fmt.Sprintf("amqp://%s:%s@%s/", RabbitUser, RabbitPassword, ep.Address()),
	}, nil
}

// DeclareQueue declares a durable queue bound to a direct exchange, the way the
// worker topology is provisioned.
func (r *RabbitMQContainer) DeclareQueue(exchange, queue, routingKey string) error {
	conn, err := amqp.Dial(r.AmqpURL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}

	return nil
}
