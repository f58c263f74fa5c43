package repository

import (
	"context"

	"github.com/royaldevs/backend/internal/model"
)

// ReviewRepository handles persistence for client reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	// ListApproved returns approved reviews, newest first.
	ListApproved(ctx context.Context, limit int) ([]*model.Review, error)
	// List returns every review regardless of approval, newest first.
	List(ctx context.Context, limit, offset int) ([]*model.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}
