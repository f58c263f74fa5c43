package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/auth"
)

// ReviewHandler serves client testimonials.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type reviewsResponse struct {
	Reviews []*model.Review `json:"reviews"`
}

// List handles GET /api/reviews. Only approved reviews are returned.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListApproved(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: reviews})
}

// Submit handles POST /api/reviews (signed-in users).
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var form validation.ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	review, err := h.reviewService.Submit(r.Context(), userID, form)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "validation_failed", Fields: verrs})
			return
		}
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// AdminList handles GET /api/admin/reviews (admin-only).
func (h *ReviewHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	limit, offset := 50, 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	reviews, err := h.reviewService.ListAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: reviews})
}

type approvalRequest struct {
	Approved *bool `json:"approved"`
}

// SetApproval handles PATCH /api/admin/reviews/{id}/approval (admin-only).
func (h *ReviewHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Approved == nil {
		writeError(w, http.StatusBadRequest, "approved_required")
		return
	}

	if err := h.reviewService.SetApproved(r.Context(), id, *body.Approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": *body.Approved})
}

// Delete handles DELETE /api/admin/reviews/{id} (admin-only).
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
