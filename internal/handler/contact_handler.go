package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/royaldevs/backend/internal/intake"
	"github.com/royaldevs/backend/internal/metrics"
	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/internal/validation"
)

// SubmissionRecorder counts contact submissions by outcome.
type SubmissionRecorder interface {
	Submission(outcome string)
}

// ContactHandler handles contact form submission and admin triage.
type ContactHandler struct {
	contactService service.ContactService
	recorder       SubmissionRecorder
}

// NewContactHandler creates a ContactHandler. recorder may be nil.
func NewContactHandler(contactService service.ContactService, recorder SubmissionRecorder) *ContactHandler {
	return &ContactHandler{contactService: contactService, recorder: recorder}
}

func (h *ContactHandler) record(outcome string) {
	if h.recorder != nil {
		h.recorder.Submission(outcome)
	}
}

type fieldErrorsResponse struct {
	Error  string            `json:"error"`
	Fields validation.Errors `json:"fields"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form validation.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	req, err := h.contactService.Submit(r.Context(), form)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			h.record(metrics.OutcomeInvalid)
			writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "validation_failed", Fields: verrs})
		case errors.Is(err, intake.ErrInFlight):
			writeError(w, http.StatusConflict, "submission_in_flight")
		default:
			h.record(metrics.OutcomeFailed)
			writeError(w, http.StatusInternalServerError, "submit_failed")
		}
		return
	}

	h.record(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusCreated, map[string]string{"id": req.ID})
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Requests []*model.ContactRequest `json:"requests"`
}

// AdminList handles GET /api/admin/contacts (admin-only).
// Supports query params: status (all or one of the statuses), limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	opts := model.ContactListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  50,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	requests, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if requests == nil {
		requests = []*model.ContactRequest{}
	}

	writeJSON(w, http.StatusOK, adminListResponse{Requests: requests})
}

// AdminGet handles GET /api/admin/contacts/{id} (admin-only).
func (h *ContactHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/contacts/{id}/status (admin-only).
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contactService.UpdateStatus(r.Context(), id, body.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid_status")
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found")
		default:
			writeError(w, http.StatusInternalServerError, "update_failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// Delete handles DELETE /api/admin/contacts/{id} (admin-only).
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
