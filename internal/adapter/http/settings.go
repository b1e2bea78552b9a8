package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"popup-ads/internal/core/port"
)

// maxCooldownMS is the largest interval a time.Duration can hold.
const maxCooldownMS = math.MaxInt64 / int64(time.Millisecond)

type cooldownBody struct {
	CooldownMS int64 `json:"cooldown_ms"`
}

func (h *Handler) handleGetCooldown(w http.ResponseWriter, r *http.Request) {
	interval, err := h.svc.CooldownInterval(r.Context())
	if err != nil {
		h.logger.Error("get cooldown error", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, cooldownBody{CooldownMS: interval.Milliseconds()})
}

// handleSetCooldown replaces the interval shared by all sessions. It takes
// effect on the next evaluation.
func (h *Handler) handleSetCooldown(w http.ResponseWriter, r *http.Request) {
	var req cooldownBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.CooldownMS > maxCooldownMS {
		h.writeError(w, http.StatusBadRequest, "cooldown_ms out of range")
		return
	}
	err := h.svc.SetCooldownInterval(r.Context(), time.Duration(req.CooldownMS)*time.Millisecond)
	if errors.Is(err, port.ErrInvalidCooldown) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("set cooldown error", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, req)
}
