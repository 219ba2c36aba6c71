package http

import (
	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/service"
	"github.com/MKhiriev/go-record-sync/models"
)

// Handler serves the notification ingress of syncd: remote change
// notifications, on-demand sync passes and read-only status routes.
type Handler struct {
	sync      service.SynchronizationCoordinator
	session   *models.Session
	buildInfo models.AppBuildInfo

	tokenSignKey string
	tokenIssuer  string

	// onViolation handles an invariant violation raised while serving a
	// request. It terminates the process unless replaced in tests.
	onViolation func(*models.InvariantViolation)

	logger *logger.Logger
}

func NewHandler(sync service.SynchronizationCoordinator, sess *models.Session, cfg config.ClientNotifications, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	h := &Handler{
		sync:         sync,
		session:      sess,
		buildInfo:    buildInfo,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
	h.onViolation = func(v *models.InvariantViolation) {
		h.logger.Fatal().Str("rule", v.Rule).Msg(v.Detail)
	}
	return h
}
