package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

// Health handles GET /api/health. It answers 503 when the store does not
// answer a ping within healthPingTimeout. Driver errors are logged, not returned.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Service: "royaldevs-api", Database: "up"}
	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check: database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "down"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
