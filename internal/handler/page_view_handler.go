package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const visitorCookieName = "visitor_id"

// PageViewRecorder stores a page view and reports whether it was stored.
type PageViewRecorder interface {
	Record(ctx context.Context, path, visitorID, userAgent, referrer string) bool
}

// PageViewCounter counts stored page views.
type PageViewCounter interface {
	PageView()
}

// PageViewHandler records anonymous site analytics.
type PageViewHandler struct {
	recorder PageViewRecorder
	counter  PageViewCounter
	secure   bool
}

// NewPageViewHandler creates a PageViewHandler. counter may be nil.
func NewPageViewHandler(recorder PageViewRecorder, counter PageViewCounter, secure bool) *PageViewHandler {
	return &PageViewHandler{recorder: recorder, counter: counter, secure: secure}
}

type pageViewRequest struct {
	Path string `json:"path"`
}

// Record handles POST /api/page-views. It always answers 204.
func (h *PageViewHandler) Record(w http.ResponseWriter, r *http.Request) {
	visitorID := h.visitorID(w, r)

	var body pageViewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
		if h.recorder.Record(r.Context(), body.Path, visitorID, r.UserAgent(), r.Referer()) && h.counter != nil {
			h.counter.PageView()
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// visitorID returns the visitor cookie, issuing a new one when missing or malformed.
func (h *PageViewHandler) visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(visitorCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
