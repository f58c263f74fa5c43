package handler

import (
	"net/http"

	"github.com/royaldevs/backend/internal/content"
)

// ContentHandler serves the blog and services listings from embedded content.
type ContentHandler struct {
	catalog *content.Catalog
}

func NewContentHandler(catalog *content.Catalog) *ContentHandler {
	return &ContentHandler{catalog: catalog}
}

type blogResponse struct {
	Posts      []content.Post `json:"posts"`
	Categories []string       `json:"categories"`
}

// Blog handles GET /api/blog?category=.
func (h *ContentHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts := h.catalog.Posts(r.URL.Query().Get("category"))
	if posts == nil {
		posts = []content.Post{}
	}
	categories := h.catalog.Categories()
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, blogResponse{Posts: posts, Categories: categories})
}

// BlogPost handles GET /api/blog/{slug}.
func (h *ContentHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.catalog.Post(r.PathValue("slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Services handles GET /api/services.
func (h *ContentHandler) Services(w http.ResponseWriter, r *http.Request) {
	services := h.catalog.Services()
	if services == nil {
		services = []content.Service{}
	}
	writeJSON(w, http.StatusOK, map[string][]content.Service{"services": services})
}
