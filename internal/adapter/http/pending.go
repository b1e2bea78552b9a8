package httpadapter

import (
	"encoding/json"
	"net/http"

	"popup-ads/internal/core/domain"
)

type pendingRequest struct {
	Trigger domain.Trigger `json:"trigger"`
}

// handleSetPending stores a one-shot trigger for the session, e.g. after a
// profile edit. A trigger that is still waiting is replaced.
func (h *Handler) handleSetPending(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req pendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !req.Trigger.IsValid() {
		h.writeError(w, http.StatusBadRequest, "unknown trigger")
		return
	}
	s.SetPendingTrigger(req.Trigger)
	w.WriteHeader(http.StatusNoContent)
}
