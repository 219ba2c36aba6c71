package http

import (
	"net/http"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/utils"
)

// synchronize runs a full pass and waits for it. The pass is queued behind any
// running one.
func (h *Handler) synchronize(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	summary := h.sync.Synchronize(r.Context(), h.session)
	if err := r.Context().Err(); err != nil {
		log.Err(err).Str("func", "*Handler.synchronize").Msg("client gave up waiting for sync pass")
		utils.WriteError(w, err, statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, newSyncView(summary), http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.synchronize").Msg("error writing response")
	}
}

func (h *Handler) getSyncState(w http.ResponseWriter, r *http.Request) {
	state := h.sync.State()
	view := stateView{Phase: state.Phase.String()}
	if state.Scope.IsValid() {
		view.Scope = state.Scope.String()
	}

	if _, err := utils.WriteJSON(w, view, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSyncState").Msg("error writing response")
	}
}
