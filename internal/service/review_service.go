package service

import (
	"context"
	"strings"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/internal/validation"
)

// PublicReviewLimit caps the approved reviews shown on the site.
const PublicReviewLimit = 50

// ReviewService handles client testimonials.
type ReviewService interface {
	// Submit validates the form and stores an unapproved review for userID.
	Submit(ctx context.Context, userID string, form validation.ReviewForm) (*model.Review, error)
	ListApproved(ctx context.Context) ([]*model.Review, error)
	ListAll(ctx context.Context, limit, offset int) ([]*model.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

type reviewServiceImpl struct {
	repo repository.ReviewRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewServiceImpl{repo: repo}
}

func (s *reviewServiceImpl) Submit(ctx context.Context, userID string, form validation.ReviewForm) (*model.Review, error) {
	form, errs := validation.ValidateReview(form)
	if errs != nil {
		return nil, errs
	}
	r := &model.Review{
		UserID:   userID,
		Name:     form.Name,
		Company:  optionalString(form.Company),
		Location: optionalString(form.Location),
		Rating:   form.Rating,
		Text:     form.Text,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *reviewServiceImpl) ListApproved(ctx context.Context) ([]*model.Review, error) {
	return s.repo.ListApproved(ctx, PublicReviewLimit)
}

func (s *reviewServiceImpl) ListAll(ctx context.Context, limit, offset int) ([]*model.Review, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *reviewServiceImpl) SetApproved(ctx context.Context, id string, approved bool) error {
	return s.repo.SetApproved(ctx, id, approved)
}

func (s *reviewServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
