package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-record-sync/internal/service"
	"github.com/MKhiriev/go-record-sync/internal/workers"
)

var errorStatusMap = map[error]int{
	ErrInvalidRequestBody:          http.StatusBadRequest,
	service.ErrInvalidNotification: http.StatusBadRequest,
	service.ErrNotAuthenticated:    http.StatusConflict,
	context.DeadlineExceeded:       http.StatusGatewayTimeout,
	context.Canceled:               http.StatusServiceUnavailable,
	workers.ErrQueueClosed:         http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
