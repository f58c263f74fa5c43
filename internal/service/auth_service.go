package service

import (
	"context"
	"errors"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/validation"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when signing up with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmailNotVerified is returned by SignIn until the confirmation link has been used.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrInvalidVerificationToken is returned for unknown, used or expired links.
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	// ErrUnverifiedProviderEmail is returned when an OAuth provider reports an
	// unverified address that already belongs to an account.
	ErrUnverifiedProviderEmail = errors.New("provider email not verified")
)

// GoogleUserInfo is the profile returned by Google OAuth.
type GoogleUserInfo struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

// GitHubUserInfo is the profile returned by GitHub OAuth.
type GitHubUserInfo struct {
	ID    int64
	Login string
	Email string
	Name  string
}

// AuthService resolves accounts for every sign-in method.
type AuthService interface {
	SignUp(ctx context.Context, form validation.SignUpForm) (*model.User, error)
	SignIn(ctx context.Context, form validation.SignInForm) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) (*model.User, error)
	ResendVerification(ctx context.Context, email string) error
	GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error)
	GetOrCreateUserFromGitHub(ctx context.Context, info *GitHubUserInfo) (*model.User, error)
}
