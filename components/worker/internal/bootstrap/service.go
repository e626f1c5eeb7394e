// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
)

// Service is the application glue where we put all top level components to be used.
type Service struct {
	*MultiQueueConsumer
	log.Logger
	healthServer *HealthServer
	cleanups     []func()
}

// Run starts the probes and the consumers, and releases every resource once they stop.
func (app *Service) Run() {
	if app.healthServer != nil {
		app.healthServer.Start()
	}

	libCommons.NewLauncher(
		libCommons.WithLogger(app.Logger),
		libCommons.RunApp("RabbitMQ Consumer", app.MultiQueueConsumer),
	).Run()

	app.Info("Starting graceful shutdown...")

	if app.healthServer != nil {
		app.healthServer.Shutdown()
	}

	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}

	app.Info("Graceful shutdown complete")
}
