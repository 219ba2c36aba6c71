package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/utils"
	"github.com/MKhiriev/go-record-sync/models"
)

// notify pulls the scope named in the notification body and answers with the
// scope summary. A pull that ran but failed is still 200: the outcome is in
// the summary result.
func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var n models.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		log.Err(err).Str("func", "*Handler.notify").Msg("error decoding notification")
		utils.WriteError(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	sender, _ := utils.GetSenderFromContext(r.Context())
	log.Debug().Str("func", "*Handler.notify").
		Str("sender", sender).
		Stringer("scope", n.Scope).
		Str("subscription_id", n.SubscriptionID).
		Msg("notification received")

	summary, err := h.sync.HandleNotification(r.Context(), h.session, n)
	if err != nil {
		log.Err(err).Str("func", "*Handler.notify").Msg("notification rejected")
		utils.WriteError(w, err, statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, newScopeView(summary), http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.notify").Msg("error writing response")
	}
}
