package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-record-sync/internal/adapter"
	"github.com/MKhiriev/go-record-sync/internal/client"
	"github.com/MKhiriev/go-record-sync/internal/config"
	httpHandler "github.com/MKhiriev/go-record-sync/internal/handler/http"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/server"
	"github.com/MKhiriev/go-record-sync/internal/service"
	"github.com/MKhiriev/go-record-sync/internal/store"
	"github.com/MKhiriev/go-record-sync/internal/tui"
	"github.com/MKhiriev/go-record-sync/internal/workers"
	"github.com/MKhiriev/go-record-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(tui.RenderBuildInfo(buildInfo))

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("syncd").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("syncd", cfg.App.LogFile)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	persistence, err := store.NewLocalPersistence(ctx, cfg.Storage.DB.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local persistence")
	}

	remote, err := adapter.NewHTTPRemoteStoreClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote store client")
	}

	descriptors, err := config.LoadPullDescriptors(cfg.Pull.DescriptorsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load pull descriptors")
	}

	services := service.NewServices(persistence, remote, cfg.App, descriptors, log,
		service.WithStateObserver(func(s service.SyncState) {
			log.Debug().Stringer("state", s).Msg("sync state")
		}),
	)

	session := models.NewSession()
	report := func(s models.SyncSummary) {
		fmt.Println(tui.RenderSummary(s))
	}

	syncJob := workers.NewSyncJob(services.Sync, session, cfg.Workers.SyncInterval, log,
		workers.WithSummaryHandler(report))

	var srv server.Server
	if cfg.Notifications.Enabled() {
		h := httpHandler.NewHandler(services.Sync, session, cfg.Notifications, buildInfo, log)
		if srv, err = server.NewServer(h.Init(), cfg.Notifications, log); err != nil {
			log.Fatal().Err(err).Msg("create notification server")
		}
	}

	app, err := client.NewApp(services, session, workers.NewWorkers(syncJob), srv, report, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init syncd error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("syncd run error")
	}

	if err = persistence.Close(); err != nil {
		log.Error().Err(err).Msg("close local persistence")
	}
}
