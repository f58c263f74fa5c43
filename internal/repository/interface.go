package repository

import (
	"context"
	"time"

	"github.com/royaldevs/backend/internal/model"
)

// DB checks that the database connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository handles persistence for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByGitHubID(ctx context.Context, githubID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProviderID(ctx context.Context, userID, column, value string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	MarkEmailVerified(ctx context.Context, userID string) error
	CreateVerification(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	ConsumeVerification(ctx context.Context, tokenHash string) (string, error)
}
