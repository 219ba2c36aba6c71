package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withFatalInvariants)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getVersion)
		r.Get("/api/sync/state", h.getSyncState)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/notifications", h.notify)
		r.Post("/api/sync", h.synchronize)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
