// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProducer() *ProducerRabbitMQRepository {
	return newProducer(&libRabbitmq.RabbitMQConnection{Logger: zap.InitializeLogger()})
}

func refreshMessage() model.SchemaRefreshMessage {
	return model.SchemaRefreshMessage{
		DataSourceID: uuid.MustParse("6d1c8d0e-9a43-4c4f-8c43-5b0d2c7f5a10"),
		RequestedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// Subtests replace the package-level sleepFunc and must not run in parallel.
func TestProducerDefault(t *testing.T) {
	originalSleep := sleepFunc

	t.Cleanup(func() { sleepFunc = originalSleep })

	t.Run("Success - publishes persistent json", func(t *testing.T) {
		sleepFunc = func(time.Duration) { t.Fatal("no retry expected") }

		producer := newTestProducer()
		producer.ensureChannel = func() error { return nil }

		var (
			gotExchange, gotKey string
			gotMsg              amqp.Publishing
		)

		producer.publish = func(_ context.Context, exchange, key string, msg amqp.Publishing) error {
			gotExchange, gotKey, gotMsg = exchange, key, msg

			return nil
		}

		_, err := producer.ProducerDefault(context.Background(), constant.SchemaRefreshExchange, constant.SchemaRefreshRoutingKey, refreshMessage())
		require.NoError(t, err)

		assert.Equal(t, constant.SchemaRefreshExchange, gotExchange)
		assert.Equal(t, constant.SchemaRefreshRoutingKey, gotKey)
		assert.Equal(t, amqp.Persistent, gotMsg.DeliveryMode)
		assert.Equal(t, "application/json", gotMsg.ContentType)
		assert.Equal(t, 0, gotMsg.Headers[constant.RetryCountHeader])

		var decoded model.SchemaRefreshMessage
		require.NoError(t, json.Unmarshal(gotMsg.Body, &decoded))
		assert.Equal(t, refreshMessage().DataSourceID, decoded.DataSourceID)
	})

	t.Run("Success - recovers after a failed channel", func(t *testing.T) {
		var sleeps int

		sleepFunc = func(time.Duration) { sleeps++ }

		producer := newTestProducer()

		calls := 0
		producer.ensureChannel = func() error {
			calls++
			if calls == 1 {
				return errors.New("channel closed")
			}

			return nil
		}
		producer.publish = func(context.Context, string, string, amqp.Publishing) error { return nil }

		_, err := producer.ProducerDefault(context.Background(), "x", "k", refreshMessage())
		require.NoError(t, err)
		assert.Equal(t, 1, sleeps)
	})

	t.Run("Error - retries exhausted", func(t *testing.T) {
		var durations []time.Duration

		sleepFunc = func(d time.Duration) { durations = append(durations, d) }

		producer := newTestProducer()
		producer.ensureChannel = func() error { return nil }
		producer.publish = func(context.Context, string, string, amqp.Publishing) error {
			return errors.New("broker unreachable")
		}

		_, err := producer.ProducerDefault(context.Background(), "x", "k", refreshMessage())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker unreachable")

		assert.Len(t, durations, constant.ProducerMaxRetries)

		for _, d := range durations {
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, constant.ProducerMaxBackoff)
		}
	})
}
