package client

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/server"
	"github.com/MKhiriev/go-record-sync/internal/service"
	"github.com/MKhiriev/go-record-sync/internal/workers"
	"github.com/MKhiriev/go-record-sync/models"
)

var errNoServices = errors.New("client app needs services")

type App struct {
	services *service.Services
	session  *models.Session
	workers  *workers.Workers
	server   server.Server
	report   func(models.SyncSummary)

	logger *logger.Logger
}

// NewApp creates the runtime. srv may be nil when the notification listener
// is disabled; report receives the summary of the startup pass.
func NewApp(services *service.Services, sess *models.Session, w *workers.Workers, srv server.Server, report func(models.SyncSummary), logger *logger.Logger) (*App, error) {
	if services == nil || sess == nil {
		return nil, errNoServices
	}
	if w == nil {
		w = workers.NewWorkers()
	}
	return &App{
		services: services,
		session:  sess,
		workers:  w,
		server:   srv,
		report:   report,
		logger:   logger,
	}, nil
}

// Run performs a first sync pass, starts the background workers and the
// listener, then blocks until ctx is done and shuts everything down.
func (a *App) Run(ctx context.Context) error {
	summary := a.services.Sync.Synchronize(ctx, a.session)
	if summary.PreflightError != nil {
		a.logger.Warn().Err(summary.PreflightError).Msg("startup sync stopped at preflight, working offline")
	}
	if a.report != nil {
		a.report(summary)
	}

	a.workers.Run(ctx)

	var wg sync.WaitGroup
	if a.server != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.server.RunServer()
		}()
	}

	<-ctx.Done()
	a.logger.Info().Msg("shutting down")

	if a.server != nil {
		a.server.Shutdown()
		wg.Wait()
	}
	a.workers.Stop()
	a.services.Close()

	return nil
}
