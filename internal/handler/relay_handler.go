package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/pkg/relay"
)

// RelayHandler receives contact notifications from the intake pipeline and
// emails the team.
type RelayHandler struct {
	notifier relay.Notifier
	secret   []byte
}

// NewRelayHandler creates a RelayHandler. Requests must carry a service
// token signed with secret.
func NewRelayHandler(notifier relay.Notifier, secret string) *RelayHandler {
	return &RelayHandler{notifier: notifier, secret: []byte(secret)}
}

// NotifyContact handles POST /api/functions/notify-contact.
func (h *RelayHandler) NotifyContact(w http.ResponseWriter, r *http.Request) {
	if len(h.secret) == 0 {
		slog.Error("notify-contact called but RELAY_SECRET is not set")
		writeError(w, http.StatusInternalServerError, "not_configured")
		return
	}
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := relay.VerifyToken(token, h.secret); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var n relay.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if _, err := uuid.Parse(n.RequestID); err != nil {
		writeError(w, http.StatusBadRequest, "request_id_required")
		return
	}

	if err := h.notifier.Notify(r.Context(), n); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "request_not_found")
			return
		}
		slog.Error("contact notification failed", "request_id", n.RequestID, "error", err)
		writeError(w, http.StatusInternalServerError, "notify_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
