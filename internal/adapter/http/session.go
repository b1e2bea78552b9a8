package httpadapter

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"popup-ads/internal/core/port"
)

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

// handleCreateSession starts an app session. The client keeps the id for
// the lifetime of the app process.
func (h *Handler) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusCreated, sessionResponse{SessionID: h.svc.CreateSession()})
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	err := h.svc.CloseSession(chi.URLParam(r, "sessionID"))
	if errors.Is(err, port.ErrSessionNotFound) {
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error("close session error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {sessionID} path parameter, writing 404 when it is
// unknown.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (port.DeliveryUseCase, bool) {
	s, err := h.svc.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}
