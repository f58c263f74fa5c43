package handler

import (
	"net/http"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/service"
)

// ShowcaseHandler serves the portfolio and team sections.
type ShowcaseHandler struct {
	showcaseService service.ShowcaseService
}

func NewShowcaseHandler(showcaseService service.ShowcaseService) *ShowcaseHandler {
	return &ShowcaseHandler{showcaseService: showcaseService}
}

// Projects handles GET /api/projects?featured=true.
func (h *ShowcaseHandler) Projects(w http.ResponseWriter, r *http.Request) {
	featured := r.URL.Query().Get("featured") == "true"
	projects, err := h.showcaseService.ListProjects(r.Context(), featured)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]*model.Project{"projects": projects})
}

// Team handles GET /api/team.
func (h *ShowcaseHandler) Team(w http.ResponseWriter, r *http.Request) {
	members, err := h.showcaseService.ListTeam(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]*model.TeamMember{"members": members})
}
