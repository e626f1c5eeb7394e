// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/LerianStudio/datagage/components/worker/internal/services"
	"github.com/LerianStudio/datagage/pkg"
	pkgRabbitmq "github.com/LerianStudio/datagage/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
)

// MultiQueueConsumer binds queue handlers to the use case and runs the consumers.
type MultiQueueConsumer struct {
	consumerRoutes pkgRabbitmq.ConsumerRepository
	UseCase        *services.UseCase
}

// NewMultiQueueConsumer registers the schema refresh handler on queue.
func NewMultiQueueConsumer(routes pkgRabbitmq.ConsumerRepository, useCase *services.UseCase, queue string) *MultiQueueConsumer {
	consumer := &MultiQueueConsumer{
		consumerRoutes: routes,
		UseCase:        useCase,
	}

	routes.Register(queue, consumer.handlerRefreshSchema)

	return consumer
}

// Run consumes until SIGINT or SIGTERM, then waits for in-flight messages.
func (mq *MultiQueueConsumer) Run(_ *libCommons.Launcher) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}

	if err := mq.consumerRoutes.RunConsumers(ctx, wg); err != nil {
		return err
	}

	wg.Wait()

	return nil
}

func (mq *MultiQueueConsumer) handlerRefreshSchema(ctx context.Context, body []byte) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "consumer.handler_refresh_schema")
	defer span.End()

	logger.Info("Processing message from schema refresh queue")

	err := mq.UseCase.RefreshSchema(ctx, body)
	if err != nil {
		if pkg.IsBusinessError(err) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Schema refresh rejected", err)
		} else {
			libOpentelemetry.HandleSpanError(&span, "Error refreshing schema", err)
		}

		return err
	}

	return nil
}
