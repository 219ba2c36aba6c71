package http

import (
	"net/http"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/utils"
)

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.buildInfo, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getVersion").Msg("error writing response")
	}
}
