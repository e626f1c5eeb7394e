// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"
	pkgRabbitmq "github.com/LerianStudio/datagage/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libConstants "github.com/LerianStudio/lib-commons/v3/commons/constants"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
)

// sleepFunc is the function used for sleeping between retries.
// Overridable in tests.
var sleepFunc = time.Sleep

type publishFunc func(ctx context.Context, exchange, key string, msg amqp.Publishing) error

// ProducerRabbitMQRepository publishes schema refresh requests to RabbitMQ.
type ProducerRabbitMQRepository struct {
	conn          *libRabbitmq.RabbitMQConnection
	ensureChannel func() error
	publish       publishFunc
}

var _ pkgRabbitmq.ProducerRepository = (*ProducerRabbitMQRepository)(nil)

// NewProducerRabbitMQ returns a producer over the given connection.
// A failed first connect is logged; the channel is restored on the next publish.
func NewProducerRabbitMQ(c *libRabbitmq.RabbitMQConnection) *ProducerRabbitMQRepository {
	prmq := newProducer(c)

	if _, err := c.GetNewConnect(); err != nil {
		c.Logger.Errorf("Failed to connect to RabbitMQ during initialization: %v", err)
		c.Logger.Warn("RabbitMQ connection will be retried on first message publish")
	} else {
		c.Logger.Info("RabbitMQ producer connected successfully")
	}

	return prmq
}

func newProducer(c *libRabbitmq.RabbitMQConnection) *ProducerRabbitMQRepository {
	return &ProducerRabbitMQRepository{
		conn:          c,
		ensureChannel: c.EnsureChannel,
		publish: func(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
			return c.Channel.PublishWithContext(ctx, exchange, key, false, false, msg)
		},
	}
}

// ProducerDefault publishes a refresh message as a persistent JSON delivery.
// Each attempt restores the channel first; failures are retried up to
// ProducerMaxRetries times with full-jitter exponential backoff.
func (prmq *ProducerRabbitMQRepository) ProducerDefault(ctx context.Context, exchange, key string, queueMessage model.SchemaRefreshMessage) (*string, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, spanProducer := tracer.Start(ctx, "repository.rabbitmq.publish_schema_refresh")
	defer spanProducer.End()

	spanProducer.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.exchange", exchange),
		attribute.String("app.request.key", key),
		attribute.String("app.request.data_source_id", queueMessage.DataSourceID.String()),
	)

	message, err := json.Marshal(queueMessage)
	if err != nil {
		libOpentelemetry.HandleSpanError(&spanProducer, "Failed to marshal schema refresh message", err)

		logger.Errorf("Failed to marshal schema refresh message: %v", err)

		return nil, err
	}

	headers := amqp.Table{
		libConstants.HeaderID:     reqId,
		constant.RetryCountHeader: 0,
	}

	libOpentelemetry.InjectTraceHeadersIntoQueue(ctx, (*map[string]any)(&headers))

	backoff := constant.ProducerInitialBackoff

	var lastErr error

	for attempt := 0; attempt <= constant.ProducerMaxRetries; attempt++ {
		if lastErr = prmq.ensureChannel(); lastErr == nil {
			lastErr = prmq.publish(ctx, exchange, key, amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Headers:      headers,
				Body:         message,
			})
			if lastErr == nil {
				logger.Infof("Schema refresh for data source %s published", queueMessage.DataSourceID)

				return nil, nil
			}
		}

		logger.Errorf("Publish failed (attempt %d/%d): %v", attempt+1, constant.ProducerMaxRetries+1, lastErr)

		spanProducer.SetAttributes(attribute.Int("app.request.rabbitmq.retry_attempt", attempt))

		if attempt == constant.ProducerMaxRetries {
			break
		}

		sleepDuration := pkg.FullJitter(backoff)

		logger.Infof("Retrying publish in %v", sleepDuration)

		sleepFunc(sleepDuration)

		backoff = pkg.NextBackoff(backoff)
	}

	libOpentelemetry.HandleSpanError(&spanProducer, "Failed to publish message after all retries", lastErr)

	return nil, lastErr
}
