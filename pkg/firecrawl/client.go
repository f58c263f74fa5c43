// Package firecrawl is a raw HTTP client for the Firecrawl v1 API
// (scrape, map and crawl).
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the Firecrawl API root.
const DefaultBaseURL = "https://api.firecrawl.dev"

// Action selects the Firecrawl endpoint.
type Action string

const (
	ActionScrape Action = "scrape"
	ActionMap    Action = "map"
	ActionCrawl  Action = "crawl"
)

var (
	// ErrNotConfigured is returned when no API key has been set.
	ErrNotConfigured = errors.New("Firecrawl not configured")
	// ErrInvalidAction is returned for anything but scrape, map or crawl.
	ErrInvalidAction = errors.New("Invalid action. Use: scrape, map, or crawl")
)

// Options are the caller-supplied knobs. Nil fields take the defaults.
type Options struct {
	Formats           []string `json:"formats,omitempty"`
	OnlyMainContent   *bool    `json:"onlyMainContent,omitempty"`
	Limit             *int     `json:"limit,omitempty"`
	IncludeSubdomains *bool    `json:"includeSubdomains,omitempty"`
	MaxDepth          *int     `json:"maxDepth,omitempty"`
}

// APIError is a non-2xx answer from Firecrawl.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firecrawl: status %d: %s", e.Status, e.Message)
}

// Crawler runs one Firecrawl action and returns the upstream JSON verbatim.
type Crawler interface {
	Run(ctx context.Context, action Action, url string, opts Options) (json.RawMessage, error)
}

// Client is the HTTP implementation of Crawler.
type Client struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a Client with a 60 second timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

var _ Crawler = (*Client)(nil)

// BuildRequest returns the endpoint path and request body for action with
// defaults applied.
func BuildRequest(action Action, url string, opts Options) (string, map[string]any, error) {
	switch action {
	case ActionScrape:
		formats := opts.Formats
		if len(formats) == 0 {
			formats = []string{"markdown"}
		}
		return "/v1/scrape", map[string]any{
			"url":             url,
			"formats":         formats,
			"onlyMainContent": boolOr(opts.OnlyMainContent, true),
		}, nil
	case ActionMap:
		return "/v1/map", map[string]any{
			"url":               url,
			"limit":             intOr(opts.Limit, 5000),
			"includeSubdomains": boolOr(opts.IncludeSubdomains, false),
		}, nil
	case ActionCrawl:
		return "/v1/crawl", map[string]any{
			"url":      url,
			"limit":    intOr(opts.Limit, 100),
			"maxDepth": intOr(opts.MaxDepth, 3),
			"scrapeOptions": map[string]any{
				"formats": []string{"markdown", "html"},
			},
		}, nil
	}
	return "", nil, ErrInvalidAction
}

// Run posts the action to Firecrawl.
func (c *Client) Run(ctx context.Context, action Action, url string, opts Options) (json.RawMessage, error) {
	path, body, err := BuildRequest(action, url, opts)
	if err != nil {
		return nil, err
	}
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firecrawl: %s: %w", action, err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if resp.StatusCode >= 300 {
			return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("Request failed with status %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("firecrawl: decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var result struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &result)
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return raw, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}
