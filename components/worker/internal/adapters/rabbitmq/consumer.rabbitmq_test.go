// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/LerianStudio/datagage/pkg"
	pkgConstant "github.com/LerianStudio/datagage/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedAck struct {
	mu      sync.Mutex
	acked   bool
	nacked  bool
	requeue bool
}

func (r *recordedAck) Ack(uint64, bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.acked = true

	return nil
}

func (r *recordedAck) Nack(_ uint64, _ bool, requeue bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nacked = true
	r.requeue = requeue

	return nil
}

func (r *recordedAck) Reject(_ uint64, requeue bool) error {
	return r.Nack(0, false, requeue)
}

func newTestRoutes() *ConsumerRoutes {
	return newConsumerRoutes(&libRabbitmq.RabbitMQConnection{}, 0, 0, &log.NoneLogger{})
}

func TestNewConsumerRoutes_Defaults(t *testing.T) {
	t.Parallel()

	cr := newTestRoutes()

	assert.Equal(t, pkgConstant.DefaultWorkerCount, cr.numWorkers)
	assert.Equal(t, pkgConstant.DefaultPrefetchCount, cr.prefetch)

	cr.Register("q", func(context.Context, []byte) error { return nil })
	assert.Contains(t, cr.routes, "q")
}

func TestConsumerRoutes_GetRetryCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  amqp091.Delivery
		want int
	}{
		{name: "nil headers", msg: amqp091.Delivery{}, want: 0},
		{name: "missing header", msg: amqp091.Delivery{Headers: amqp091.Table{"other": 1}}, want: 0},
		{name: "int", msg: amqp091.Delivery{Headers: amqp091.Table{pkgConstant.RetryCountHeader: 3}}, want: 3},
		{name: "int32", msg: amqp091.Delivery{Headers: amqp091.Table{pkgConstant.RetryCountHeader: int32(2)}}, want: 2},
		{name: "int64", msg: amqp091.Delivery{Headers: amqp091.Table{pkgConstant.RetryCountHeader: int64(4)}}, want: 4},
		{name: "float64", msg: amqp091.Delivery{Headers: amqp091.Table{pkgConstant.RetryCountHeader: float64(5)}}, want: 5},
		{name: "negative", msg: amqp091.Delivery{Headers: amqp091.Table{pkgConstant.RetryCountHeader: int64(-10)}}, want: 0},
		{name: "string", msg: amqp091.Delivery{Headers: amqp091.Table{pkgConstant.RetryCountHeader: "2"}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, getRetryCount(tt.msg))
		})
	}
}

func TestConsumerRoutes_IsRetryable(t *testing.T) {
	t.Parallel()

	notFound := pkg.ValidateBusinessError(pkgConstant.ErrEntityNotFound, pkgConstant.MongoCollectionDataSource)
	unavailable := pkg.ValidateBusinessError(pkgConstant.ErrDataSourceUnavailable, pkgConstant.MongoCollectionDataSource, "id")
	connErr := pkg.NewConnectionError("postgresql", errors.New("dial tcp: connection refused"))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "generic", err: errors.New("i/o timeout"), want: true},
		{name: "deadline exceeded", err: fmt.Errorf("introspect: %w", context.DeadlineExceeded), want: true},
		{name: "not found", err: notFound, want: false},
		{name: "unsupported engine", err: pkg.NewUnsupportedEngineError("snowflake"), want: false},
		{name: "schema error", err: pkg.NewSchemaError("mysql", errors.New("access denied")), want: false},
		{name: "connection error", err: connErr, want: true},
		{name: "schema error over a connection fault", err: pkg.NewSchemaError("mysql", connErr), want: true},
		{name: "breaker open", err: unavailable, want: true},
		{name: "bad payload", err: pkg.ValidationError{Code: "DGG-0001"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestBuildRetryHeaders(t *testing.T) {
	t.Parallel()

	existing := amqp091.Table{
		"x-custom-header":            "custom-value",
		pkgConstant.RetryCountHeader: 2,
		"x-correlation-id":           "abc-123",
	}

	headers := buildRetryHeaders(existing, 2, errors.New("network unreachable"))

	require.NotNil(t, headers)
	assert.Equal(t, 3, headers[pkgConstant.RetryCountHeader])
	assert.Equal(t, "network unreachable", headers[pkgConstant.RetryFailureReasonHeader])
	assert.Equal(t, "custom-value", headers["x-custom-header"])
	assert.Equal(t, "abc-123", headers["x-correlation-id"])
	assert.Equal(t, 2, existing[pkgConstant.RetryCountHeader], "original headers are not mutated")

	first := buildRetryHeaders(nil, 0, errors.New(strings.Repeat("x", pkgConstant.RetryFailureReasonMaxLen+10)))
	assert.Equal(t, 1, first[pkgConstant.RetryCountHeader])
	assert.Len(t, first[pkgConstant.RetryFailureReasonHeader], pkgConstant.RetryFailureReasonMaxLen)
}

func TestConsumerRoutes_SanitizeFailureReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", sanitizeFailureReason(""))
	assert.Equal(t, "timeout", sanitizeFailureReason("timeout"))
	assert.Len(t, sanitizeFailureReason(strings.Repeat("b", pkgConstant.RetryFailureReasonMaxLen+50)), pkgConstant.RetryFailureReasonMaxLen)

	// "é" is two bytes; with one byte of room left its lead byte must not be kept alone.
	accented := strings.Repeat("a", pkgConstant.RetryFailureReasonMaxLen-1) + "é tail"
	cut := sanitizeFailureReason(accented)

	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("a", pkgConstant.RetryFailureReasonMaxLen-1), cut)

	multibyte := sanitizeFailureReason(strings.Repeat("日本", pkgConstant.RetryFailureReasonMaxLen))
	assert.True(t, utf8.ValidString(multibyte))
	assert.LessOrEqual(t, len(multibyte), pkgConstant.RetryFailureReasonMaxLen)
}

// Subtests replace the package-level sleepFunc and must not run in parallel.
func TestConsumerRoutes_ProcessMessage(t *testing.T) {
	originalSleep := sleepFunc
	sleepFunc = func(time.Duration) {}

	t.Cleanup(func() { sleepFunc = originalSleep })

	delivery := func(ack *recordedAck, retry int) amqp091.Delivery {
		return amqp091.Delivery{
			Acknowledger: ack,
			Headers:      amqp091.Table{pkgConstant.RetryCountHeader: retry},
			ContentType:  "application/json",
			Body:         []byte(`{"dataSourceId":"6d1c8d0e-9a43-4c4f-8c43-5b0d2c7f5a10"}`),
		}
	}

	t.Run("Success - acks handled message", func(t *testing.T) {
		cr := newTestRoutes()
		ack := &recordedAck{}

		cr.processMessage(1, "q", func(context.Context, []byte) error { return nil }, delivery(ack, 0))

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("Error - business failure is dead-lettered", func(t *testing.T) {
		cr := newTestRoutes()
		cr.republish = func(context.Context, string, amqp091.Publishing) error {
			t.Fatal("business failures must not be republished")
			return nil
		}

		ack := &recordedAck{}

		cr.processMessage(1, "q", func(context.Context, []byte) error {
			return pkg.NewUnsupportedEngineError("oracle")
		}, delivery(ack, 0))

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("Error - transient failure is republished with next retry count", func(t *testing.T) {
		cr := newTestRoutes()

		var (
			gotQueue string
			gotMsg   amqp091.Publishing
		)

		cr.republish = func(_ context.Context, queue string, msg amqp091.Publishing) error {
			gotQueue, gotMsg = queue, msg
			return nil
		}

		ack := &recordedAck{}

		cr.processMessage(1, "refresh", func(context.Context, []byte) error {
			return errors.New("redis: connection pool timeout")
		}, delivery(ack, 1))

		assert.True(t, ack.acked)
		assert.Equal(t, "refresh", gotQueue)
		assert.Equal(t, 2, gotMsg.Headers[pkgConstant.RetryCountHeader])
		assert.Equal(t, amqp091.Persistent, gotMsg.DeliveryMode)
	})

	t.Run("Error - failed republish requeues the original", func(t *testing.T) {
		cr := newTestRoutes()
		cr.republish = func(context.Context, string, amqp091.Publishing) error {
			return errors.New("channel closed")
		}

		ack := &recordedAck{}

		cr.processMessage(1, "q", func(context.Context, []byte) error {
			return errors.New("timeout")
		}, delivery(ack, 0))

		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("Error - exhausted retries are dead-lettered", func(t *testing.T) {
		cr := newTestRoutes()
		ack := &recordedAck{}

		cr.processMessage(1, "q", func(context.Context, []byte) error {
			return errors.New("timeout")
		}, delivery(ack, pkgConstant.MaxMessageRetries))

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})
}
