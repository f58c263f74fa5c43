package repository

import (
	"context"

	"github.com/royaldevs/backend/internal/model"
)

// SessionRepository handles persistence for user sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired removes sessions past their expiry and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
