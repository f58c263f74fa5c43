package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/royaldevs/backend/pkg/firecrawl"
)

// ScrapeRequest is the body accepted by the scrape proxy.
type ScrapeRequest struct {
	Action  firecrawl.Action  `json:"action"`
	URL     string            `json:"url"`
	Options firecrawl.Options `json:"options"`
}

// InputError is a client mistake in a scrape request (HTTP 400).
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// ScrapeService validates scrape requests and forwards them to Firecrawl.
type ScrapeService struct {
	crawler firecrawl.Crawler
	siteURL string
}

// NewScrapeService creates a ScrapeService. siteURL is the address crawled by IndexSite.
func NewScrapeService(crawler firecrawl.Crawler, siteURL string) *ScrapeService {
	return &ScrapeService{crawler: crawler, siteURL: siteURL}
}

// Run checks the action, url and options, then forwards the request.
// Input problems are returned as *InputError; upstream failures as
// *firecrawl.APIError; a missing key as firecrawl.ErrNotConfigured.
func (s *ScrapeService) Run(ctx context.Context, req ScrapeRequest) (json.RawMessage, error) {
	switch req.Action {
	case firecrawl.ActionScrape, firecrawl.ActionMap, firecrawl.ActionCrawl:
	default:
		return nil, &InputError{Message: firecrawl.ErrInvalidAction.Error()}
	}
	target, err := firecrawl.NormalizeURL(req.URL)
	if err != nil {
		return nil, &InputError{Message: err.Error()}
	}
	if err := firecrawl.ValidateOptions(req.Options); err != nil {
		return nil, &InputError{Message: err.Error()}
	}

	slog.Info("firecrawl request", "action", req.Action, "url", target)
	data, err := s.crawler.Run(ctx, req.Action, target, req.Options)
	if err != nil {
		slog.Error("firecrawl request failed", "action", req.Action, "error", err)
		return nil, err
	}
	return data, nil
}

// IndexSite crawls the agency's own site.
func (s *ScrapeService) IndexSite(ctx context.Context) (json.RawMessage, error) {
	limit, depth := 50, 3
	return s.Run(ctx, ScrapeRequest{
		Action:  firecrawl.ActionCrawl,
		URL:     s.siteURL,
		Options: firecrawl.Options{Limit: &limit, MaxDepth: &depth},
	})
}
