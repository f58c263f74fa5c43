package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/royaldevs/backend/pkg/auth"
)

// requireAdmin writes 401/403 and returns false unless the request comes
// from a signed-in admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

// pathID reads the {id} path value and rejects anything that is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return "", false
	}
	return id, true
}
