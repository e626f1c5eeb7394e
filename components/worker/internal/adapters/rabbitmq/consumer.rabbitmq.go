// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/LerianStudio/datagage/pkg"
	pkgConstant "github.com/LerianStudio/datagage/pkg/constant"
	pkgRabbitmq "github.com/LerianStudio/datagage/pkg/rabbitmq"

	"github.com/LerianStudio/lib-commons/v3/commons"
	constant "github.com/LerianStudio/lib-commons/v3/commons/constants"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// sleepFunc waits out the redelivery backoff. Overridable in tests.
var sleepFunc = time.Sleep

type republishFunc func(ctx context.Context, queue string, msg amqp091.Publishing) error

// ConsumerRoutes runs a fixed pool of workers per registered queue.
type ConsumerRoutes struct {
	conn       *rabbitmq.RabbitMQConnection
	routes     map[string]pkgRabbitmq.QueueHandlerFunc
	numWorkers int
	prefetch   int
	republish  republishFunc
	log.Logger
}

var _ pkgRabbitmq.ConsumerRepository = (*ConsumerRoutes)(nil)

// NewConsumerRoutes connects to RabbitMQ and returns an empty route table.
func NewConsumerRoutes(conn *rabbitmq.RabbitMQConnection, numWorkers, prefetch int, logger log.Logger) (*ConsumerRoutes, error) {
	cr := newConsumerRoutes(conn, numWorkers, prefetch, logger)

	if _, err := conn.GetNewConnect(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	return cr, nil
}

func newConsumerRoutes(conn *rabbitmq.RabbitMQConnection, numWorkers, prefetch int, logger log.Logger) *ConsumerRoutes {
	if numWorkers <= 0 {
		numWorkers = pkgConstant.DefaultWorkerCount
	}

	if prefetch <= 0 {
		prefetch = pkgConstant.DefaultPrefetchCount
	}

	return &ConsumerRoutes{
		conn:       conn,
		routes:     make(map[string]pkgRabbitmq.QueueHandlerFunc),
		numWorkers: numWorkers,
		prefetch:   prefetch,
		Logger:     logger,
		republish: func(ctx context.Context, queue string, msg amqp091.Publishing) error {
			if err := conn.EnsureChannel(); err != nil {
				return err
			}

			return conn.Channel.PublishWithContext(ctx, "", queue, false, false, msg)
		},
	}
}

// Register binds a handler to a queue.
func (cr *ConsumerRoutes) Register(queueName string, handler pkgRabbitmq.QueueHandlerFunc) {
	cr.routes[queueName] = handler
}

// RunConsumers starts the workers of every registered queue. Workers stop when ctx is done.
func (cr *ConsumerRoutes) RunConsumers(ctx context.Context, wg *sync.WaitGroup) error {
	for queueName, handler := range cr.routes {
		cr.Info("Starting consumer for queue " + queueName)

		if err := cr.conn.Channel.Qos(cr.prefetch, 0, false); err != nil {
			return err
		}

		messages, err := cr.conn.Channel.Consume(queueName, "", false, false, false, false, nil)
		if err != nil {
			return err
		}

		cr.startWorkers(ctx, wg, messages, queueName, handler)
	}

	return nil
}

func (cr *ConsumerRoutes) startWorkers(ctx context.Context, wg *sync.WaitGroup, messages <-chan amqp091.Delivery, queueName string, handler pkgRabbitmq.QueueHandlerFunc) {
	for i := 0; i < cr.numWorkers; i++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					cr.Errorf("Panic recovered in RabbitMQ worker %d for queue %s: %v\nStack: %s", workerID, queueName, r, string(debug.Stack()))
				}
			}()

			for {
				select {
				case <-ctx.Done():
					cr.Infof("Worker %d: Shutting down gracefully", workerID)
					return
				case message, ok := <-messages:
					if !ok {
						cr.Infof("Worker %d: Message channel closed", workerID)
						return
					}

					cr.processMessage(workerID, queueName, handler, message)
				}
			}
		}(i)
	}
}

func (cr *ConsumerRoutes) processMessage(workerID int, queue string, handlerFunc pkgRabbitmq.QueueHandlerFunc, message amqp091.Delivery) {
	requestID, _ := message.Headers[constant.HeaderID].(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logWithFields := cr.Logger.WithFields(constant.HeaderID, requestID)

	ctx := commons.ContextWithLogger(
		commons.ContextWithHeaderID(context.Background(), requestID),
		logWithFields,
	)

	ctx = opentelemetry.ExtractTraceContextFromQueueHeaders(ctx, message.Headers)

	tracer := commons.NewTracerFromContext(ctx)

	ctx, spanConsumer := tracer.Start(ctx, "repository.rabbitmq.process_message")
	defer spanConsumer.End()

	retryCount := getRetryCount(message)

	spanConsumer.SetAttributes(
		attribute.String("app.request.rabbitmq.consumer.request_id", requestID),
		attribute.String("app.request.rabbitmq.consumer.queue", queue),
		attribute.Int("app.request.rabbitmq.consumer.retry_count", retryCount),
	)

	logWithFields.Infof("Worker %d: Starting processing for queue %s (attempt %d)", workerID, queue, retryCount+1)

	if err := handlerFunc(ctx, message.Body); err != nil {
		logWithFields.Errorf("Worker %d: Error processing message from queue %s: %v", workerID, queue, err)

		cr.handleFailedMessage(ctx, workerID, queue, message, err, retryCount, &spanConsumer)

		return
	}

	if err := message.Ack(false); err != nil {
		logWithFields.Errorf("Worker %d: Failed to ack message: %v", workerID, err)

		return
	}

	logWithFields.Infof("Worker %d: Successfully processed message from queue %s", workerID, queue)
}

// handleFailedMessage dead-letters business failures and exhausted messages.
// Other failures are republished with an incremented retry count after a backoff,
// and the original delivery is acknowledged.
func (cr *ConsumerRoutes) handleFailedMessage(ctx context.Context, workerID int, queue string, message amqp091.Delivery, err error, retryCount int, span *trace.Span) {
	if !isRetryable(err) {
		cr.Infof("Worker %d: Non-retryable error for queue %s, sending to DLQ: %v", workerID, queue, err)
		opentelemetry.HandleSpanBusinessErrorEvent(span, "Non-retryable business error, routing to DLQ", err)

		_ = message.Nack(false, false)

		return
	}

	if retryCount >= pkgConstant.MaxMessageRetries {
		cr.Errorf("Worker %d: Max retries (%d) exceeded for queue %s, sending to DLQ: %v",
			workerID, pkgConstant.MaxMessageRetries, queue, err)
		opentelemetry.HandleSpanError(span, "Max retries exceeded, routing to DLQ", err)

		_ = message.Nack(false, false)

		return
	}

	opentelemetry.HandleSpanError(span, "Retryable error processing message", err)

	backoff := pkg.RedeliveryBackoff(retryCount)

	cr.Infof("Worker %d: Retryable error for queue %s (attempt %d/%d), backoff %v before retry: %v",
		workerID, queue, retryCount+1, pkgConstant.MaxMessageRetries, backoff, err)

	sleepFunc(backoff)

	retry := amqp091.Publishing{
		Headers:      buildRetryHeaders(message.Headers, retryCount, err),
		ContentType:  message.ContentType,
		DeliveryMode: amqp091.Persistent,
		Body:         message.Body,
	}

	if pubErr := cr.republish(ctx, queue, retry); pubErr != nil {
		cr.Errorf("Worker %d: Failed to republish message, requeueing original: %v", workerID, pubErr)

		_ = message.Nack(false, true)

		return
	}

	_ = message.Ack(false)
}

// buildRetryHeaders copies the original headers and records the next attempt and its cause.
func buildRetryHeaders(existing amqp091.Table, retryCount int, lastErr error) amqp091.Table {
	headers := make(amqp091.Table, len(existing)+2)

	for k, v := range existing {
		headers[k] = v
	}

	headers[pkgConstant.RetryCountHeader] = retryCount + 1

	if lastErr != nil {
		headers[pkgConstant.RetryFailureReasonHeader] = sanitizeFailureReason(lastErr.Error())
	}

	return headers
}

// sanitizeFailureReason caps the reason at RetryFailureReasonMaxLen bytes without
// splitting a UTF-8 sequence.
func sanitizeFailureReason(reason string) string {
	if len(reason) <= pkgConstant.RetryFailureReasonMaxLen {
		return reason
	}

	cut := pkgConstant.RetryFailureReasonMaxLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}

	return reason[:cut]
}

// isRetryable reports whether a failed message may succeed on a later attempt.
// Connection faults, an open breaker and unknown errors are retried.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	return !pkg.IsBusinessError(err)
}

// getRetryCount reads the retry header. Missing, negative or non-numeric values count as zero.
func getRetryCount(msg amqp091.Delivery) int {
	if msg.Headers == nil {
		return 0
	}

	var count int

	switch v := msg.Headers[pkgConstant.RetryCountHeader].(type) {
	case int:
		count = v
	case int32:
		count = int(v)
	case int64:
		count = int(v)
	case float64:
		count = int(v)
	default:
		return 0
	}

	if count < 0 {
		return 0
	}

	return count
}
