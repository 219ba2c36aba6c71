package server

import (
	"net/http"

	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates the notification listener for handler. It fails with
// errNoServersAreCreated when no listen address is configured.
func NewServer(handler http.Handler, cfg config.ClientNotifications, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if !cfg.Enabled() {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg.HTTPAddress, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	s.logger.Info().Msg("Launching HTTP server")
	s.httpServer.RunServer()
	s.logger.Info().Msg("HTTP server stopped")
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")
}
