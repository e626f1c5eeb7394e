// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/gofiber/fiber/v2"
)

const serverShutdownTimeout = 10 * time.Second

// Server represents the http server for the data source API.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        log.Logger
	// notify is replaced in tests.
	notify func(ctx context.Context) (context.Context, context.CancelFunc)
}

// ServerAddress returns is a convenience method to return the server address.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// NewServer creates an instance of Server.
func NewServer(cfg *Config, app *fiber.App, logger log.Logger) *Server {
	return &Server{
		app:           app,
		serverAddress: cfg.ServerAddress,
		logger:        logger,
		notify: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		},
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
// A listener failure is returned without waiting for a signal.
func (s *Server) Run(_ *libCommons.Launcher) error {
	ctx, stop := s.notify(context.Background())
	defer stop()

	listenErr := make(chan error, 1)

	go func() {
		s.logger.Infof("HTTP server listening on %s", s.serverAddress)

		listenErr <- s.app.Listen(s.serverAddress)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			s.logger.Errorf("HTTP server stopped: %v", err)
		}

		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received, draining HTTP server")

	if err := s.app.ShutdownWithTimeout(serverShutdownTimeout); err != nil {
		s.logger.Errorf("HTTP server shutdown failed: %v", err)

		return err
	}

	return nil
}
