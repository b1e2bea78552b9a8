package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"popup-ads/internal/core/port"
)

// handleStatsOverview returns aggregated displays over a period. It accepts
// optional `from`, `to` (RFC3339) and `campaign_id` query parameters and
// defaults to the last 24 hours.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	var (
		q       = r.URL.Query()
		fromStr = q.Get("from")
		toStr   = q.Get("to")
		now     = time.Now()
		req     = port.StatsReq{From: now.Add(-24 * time.Hour), To: now}
		err     error
	)

	if fromStr != "" {
		if req.From, err = time.Parse(time.RFC3339, fromStr); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid 'from' timestamp")
			return
		}
	}
	if toStr != "" {
		if req.To, err = time.Parse(time.RFC3339, toStr); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid 'to' timestamp")
			return
		}
	}
	if req.To.Before(req.From) {
		h.writeError(w, http.StatusBadRequest, "'to' is before 'from'")
		return
	}

	if cid := q.Get("campaign_id"); cid != "" {
		id, err := strconv.ParseInt(cid, 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid campaign_id")
			return
		}
		req.CampaignID = &id
	}

	stats, err := h.svc.GetStats(r.Context(), req)
	if err != nil {
		h.logger.Error("stats error", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
