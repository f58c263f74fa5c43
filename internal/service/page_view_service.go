package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
)

const (
	maxPagePathLen  = 500
	maxUserAgentLen = 500
	maxReferrerLen  = 1000
)

// PageViewService records site analytics. Recording is best-effort: it
// never returns an error to the caller.
type PageViewService struct {
	repo repository.PageViewRepository
}

// NewPageViewService creates a PageViewService.
func NewPageViewService(repo repository.PageViewRepository) *PageViewService {
	return &PageViewService{repo: repo}
}

// Record stores one page view and reports whether it was stored.
func (s *PageViewService) Record(ctx context.Context, path, visitorID, userAgent, referrer string) bool {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") || visitorID == "" {
		return false
	}
	pv := &model.PageView{
		PagePath:  truncate(path, maxPagePathLen),
		VisitorID: visitorID,
		UserAgent: truncate(userAgent, maxUserAgentLen),
	}
	if referrer != "" {
		ref := truncate(referrer, maxReferrerLen)
		pv.Referrer = &ref
	}
	if err := s.repo.Create(ctx, pv); err != nil {
		slog.Warn("page view not recorded", "path", pv.PagePath, "error", err)
		return false
	}
	return true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
