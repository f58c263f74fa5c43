package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/pkg/auth"
)

// MeHandler returns the signed-in user.
type MeHandler struct {
	userRepo    repository.UserRepository
	sv          auth.SessionValidator
	adminEmails []string
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(userRepo repository.UserRepository, sv auth.SessionValidator, adminEmails []string) *MeHandler {
	return &MeHandler{userRepo: userRepo, sv: sv, adminEmails: adminEmails}
}

type meResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsAdmin     bool      `json:"is_admin"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
}

// Me handles GET /api/me.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := h.sv.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		log.Printf("[AUTH] Me: session validation error: %v", err)
		writeError(w, http.StatusUnauthorized, "invalid_session")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		log.Printf("[AUTH] Me: user not found: userID=%s, err=%v", userID, err)
		writeError(w, http.StatusNotFound, "user_not_found")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsAdmin:     user.IsVerified() && auth.IsAdminEmail(h.adminEmails, user.Email),
		HasPassword: user.HasPassword(),
		CreatedAt:   user.CreatedAt,
	})
}
