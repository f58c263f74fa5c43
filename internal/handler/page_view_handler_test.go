package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPageViewHandler_IssuesVisitorCookie(t *testing.T) {
	rec := &mockPageViewRecorder{ok: true}
	counter := &countingRecorder{}
	h := NewPageViewHandler(rec, counter, false)

	req := httptest.NewRequest("POST", "/api/page-views", strings.NewReader(`{"path":"/services"}`))
	w := httptest.NewRecorder()
	h.Record(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	c := findCookie(w, visitorCookieName)
	if c == nil {
		t.Fatal("expected visitor_id cookie")
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		t.Errorf("visitor id is not a uuid: %q", c.Value)
	}
	if len(rec.ids) != 1 || rec.ids[0] != c.Value || rec.paths[0] != "/services" {
		t.Errorf("unexpected record call: paths=%v ids=%v", rec.paths, rec.ids)
	}
	if counter.pageViews != 1 {
		t.Errorf("expected page view counted, got %d", counter.pageViews)
	}
}

func TestPageViewHandler_ReusesVisitorCookie(t *testing.T) {
	rec := &mockPageViewRecorder{ok: true}
	h := NewPageViewHandler(rec, nil, false)

	req := httptest.NewRequest("POST", "/api/page-views", strings.NewReader(`{"path":"/"}`))
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: testUUID})
	w := httptest.NewRecorder()
	h.Record(w, req)

	if findCookie(w, visitorCookieName) != nil {
		t.Error("existing visitor cookie should not be reissued")
	}
	if len(rec.ids) != 1 || rec.ids[0] != testUUID {
		t.Errorf("expected existing visitor id, got %v", rec.ids)
	}
}

func TestPageViewHandler_AlwaysNoContent(t *testing.T) {
	rec := &mockPageViewRecorder{ok: false}
	counter := &countingRecorder{}
	h := NewPageViewHandler(rec, counter, false)

	for _, body := range []string{"garbage", `{"path":"no-slash"}`} {
		w := httptest.NewRecorder()
		h.Record(w, httptest.NewRequest("POST", "/api/page-views", strings.NewReader(body)))
		if w.Code != http.StatusNoContent {
			t.Errorf("body %q: expected 204, got %d", body, w.Code)
		}
	}
	if counter.pageViews != 0 {
		t.Errorf("failed records must not be counted, got %d", counter.pageViews)
	}
}
