package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/pkg/firecrawl"
)

// Scraper is the part of service.ScrapeService used by ScrapeHandler.
type Scraper interface {
	Run(ctx context.Context, req service.ScrapeRequest) (json.RawMessage, error)
	IndexSite(ctx context.Context) (json.RawMessage, error)
}

// ScrapeHandler proxies admin scrape requests to Firecrawl.
type ScrapeHandler struct {
	scraper Scraper
}

// NewScrapeHandler creates a ScrapeHandler.
func NewScrapeHandler(scraper Scraper) *ScrapeHandler {
	return &ScrapeHandler{scraper: scraper}
}

type scrapeErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Firecrawl handles POST /api/functions/firecrawl (admin-only).
func (h *ScrapeHandler) Firecrawl(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req service.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, scrapeErrorResponse{Error: "Invalid JSON body"})
		return
	}

	data, err := h.scraper.Run(r.Context(), req)
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	writeRaw(w, data)
}

// IndexSite handles POST /api/admin/index-site (admin-only).
func (h *ScrapeHandler) IndexSite(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	data, err := h.scraper.IndexSite(r.Context())
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	writeRaw(w, data)
}

func writeScrapeError(w http.ResponseWriter, err error) {
	var inputErr *service.InputError
	var apiErr *firecrawl.APIError
	switch {
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, scrapeErrorResponse{Error: inputErr.Message})
	case errors.As(err, &apiErr):
		writeJSON(w, apiErr.Status, scrapeErrorResponse{Error: apiErr.Message})
	case errors.Is(err, firecrawl.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, scrapeErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, scrapeErrorResponse{Error: "Scrape request failed"})
	}
}

// writeRaw relays an upstream JSON document unchanged.
func writeRaw(w http.ResponseWriter, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
