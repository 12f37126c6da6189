// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 30 * time.Second

// Server represents the http server for the note delivery service.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        log.Logger
	telemetry     *libOtel.Telemetry
}

// ServerAddress returns is a convenience method to return the server address.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// NewServer creates an instance of Server.
func NewServer(cfg *Config, app *fiber.App, logger log.Logger, telemetry *libOtel.Telemetry) *Server {
	return &Server{
		app:           app,
		serverAddress: cfg.ServerAddress,
		logger:        logger,
		telemetry:     telemetry,
	}
}

// Run starts the HTTP listener and blocks until a termination signal
// arrives, then drains in-flight requests before returning.
func (s *Server) Run(l *libCommons.Launcher) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Infof("HTTP server listening on %s", s.serverAddress)

		if err := s.app.Listen(s.serverAddress); err != nil {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		s.logger.Errorf("HTTP server stopped unexpectedly: %v", err)
		return err
	case sig := <-sigChan:
		s.logger.Infof("Received signal %s, shutting down HTTP server", sig)
	}

	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		s.logger.Errorf("Failed to drain HTTP server: %v", err)
		return err
	}

	s.logger.Info("HTTP server stopped")

	return nil
}
