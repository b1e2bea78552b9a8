package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"popup-ads/internal/core/domain"
	"popup-ads/internal/core/port"
)

// outcomeHeader carries the delivery outcome on 204 responses.
const outcomeHeader = "X-Popup-Outcome"

type eventRequest struct {
	Trigger domain.Trigger     `json:"trigger"`
	Profile domain.UserProfile `json:"profile"`
}

type popupResponse struct {
	CampaignID  int64          `json:"campaign_id"`
	CreativeRef string         `json:"creative_ref"`
	LinkRef     string         `json:"link_ref"`
	Token       string         `json:"token"`
	Trigger     domain.Trigger `json:"trigger"`
}

// handleEvent runs one evaluation tick for the trigger in the body and any
// pending trigger of the session. It returns the popup to render, or 204
// with the outcome in the X-Popup-Outcome header.
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	h.deliver(w, r, port.DeliveryUseCase.OnEvent)
}

// handleContext reports the current screen context. Only context changes
// that count as a new ambient event, or a waiting pending trigger, lead to
// a delivery attempt.
func (h *Handler) handleContext(w http.ResponseWriter, r *http.Request) {
	h.deliver(w, r, port.DeliveryUseCase.OnContext)
}

type deliverFunc func(port.DeliveryUseCase, context.Context, domain.Trigger, domain.UserProfile) (domain.Delivery, error)

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request, fn deliverFunc) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Trigger != "" && !req.Trigger.IsValid() {
		h.writeError(w, http.StatusBadRequest, "unknown trigger")
		return
	}
	d, err := fn(s, r.Context(), req.Trigger, req.Profile)
	if err != nil {
		h.logger.Error("delivery error", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !d.Presented() {
		w.Header().Set(outcomeHeader, string(d.Outcome))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set(outcomeHeader, string(d.Outcome))
	h.writeJSON(w, http.StatusOK, popupResponse{
		CampaignID:  d.Campaign.ID,
		CreativeRef: d.Campaign.CreativeRef,
		LinkRef:     d.Campaign.LinkRef,
		Token:       d.Display.Token,
		Trigger:     d.Trigger,
	})
}
