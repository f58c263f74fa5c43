package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// VerificationTTL is how long an emailed confirmation link stays valid.
const VerificationTTL = 24 * time.Hour

// AuthServiceImpl implements AuthService on top of UserRepository.
type AuthServiceImpl struct {
	userRepo repository.UserRepository
	verifier VerificationSender
	cost     int
	now      func() time.Time
}

// NewAuthService creates an AuthServiceImpl using bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, verifier VerificationSender) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, verifier: verifier, cost: bcrypt.DefaultCost, now: time.Now}
}

// SignUp validates the form, creates an unverified password account and
// emails a confirmation link. Any existing account with the same email,
// OAuth-only ones included, yields ErrEmailTaken. A failed send is logged
// only; the user can ask for a new link.
func (s *AuthServiceImpl) SignUp(ctx context.Context, form validation.SignUpForm) (*model.User, error) {
	form, errs := validation.ValidateSignUp(form)
	if errs != nil {
		return nil, errs
	}

	_, err := s.userRepo.FindByEmail(ctx, form.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        form.Email,
		Name:         form.FullName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		slog.Error("create user failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", u.ID, "provider", "email")

	if err := s.sendVerification(ctx, u); err != nil {
		slog.Warn("verification email failed", "user_id", u.ID, "error", err)
	}
	return u, nil
}

// SignIn checks email and password. Unknown emails, OAuth-only accounts and
// wrong passwords all yield ErrInvalidCredentials; a correct password on an
// unconfirmed account yields ErrEmailNotVerified.
func (s *AuthServiceImpl) SignIn(ctx context.Context, form validation.SignInForm) (*model.User, error) {
	form, errs := validation.ValidateSignIn(form)
	if errs != nil {
		return nil, errs
	}

	u, err := s.userRepo.FindByEmail(ctx, form.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !u.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(form.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified() {
		return nil, ErrEmailNotVerified
	}
	return u, nil
}

// VerifyEmail consumes a confirmation token and marks the account verified.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidVerificationToken
	}
	userID, err := s.userRepo.ConsumeVerification(ctx, hashToken(token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidVerificationToken
	}
	if err != nil {
		return nil, fmt.Errorf("consume verification: %w", err)
	}
	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	slog.Info("email verified", "user_id", userID)
	return s.userRepo.FindByID(ctx, userID)
}

// ResendVerification emails a fresh link to an unconfirmed password account.
// Unknown and already verified addresses return nil without sending.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, email string) error {
	u, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u.IsVerified() || !u.HasPassword() {
		return nil
	}
	return s.sendVerification(ctx, u)
}

func (s *AuthServiceImpl) sendVerification(ctx context.Context, u *model.User) error {
	if s.verifier == nil {
		return errors.New("no verification sender")
	}
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	if err := s.userRepo.CreateVerification(ctx, u.ID, hashToken(token), s.now().Add(VerificationTTL)); err != nil {
		return fmt.Errorf("store verification: %w", err)
	}
	return s.verifier.SendVerification(ctx, u, token)
}

// hashToken is what the store keeps; the raw token only travels in the email.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GetOrCreateUserFromGoogle finds the user by Google id, then by email
// (linking the id), and creates one otherwise.
func (s *AuthServiceImpl) GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	slog.Debug("get or create google user", "sub", info.Sub, "email", info.Email)
	return s.getOrCreate(ctx, "google", "google_id", info.Sub, info.EmailVerified, &model.User{
		Email:    info.Email,
		GoogleID: info.Sub,
		Name:     info.Name,
	}, s.userRepo.FindByGoogleID)
}

// GetOrCreateUserFromGitHub is GetOrCreateUserFromGoogle for GitHub. A
// missing name falls back to the login, a missing public email to the
// noreply address.
func (s *AuthServiceImpl) GetOrCreateUserFromGitHub(ctx context.Context, info *GitHubUserInfo) (*model.User, error) {
	githubID := strconv.FormatInt(info.ID, 10)
	name := info.Name
	if name == "" {
		name = info.Login
	}
	email := info.Email
	if email == "" {
		email = info.Login + "@users.noreply.github.com"
	}
	// GitHub only exposes verified addresses as the public or primary email.
	return s.getOrCreate(ctx, "github", "github_id", githubID, true, &model.User{
		Email:    email,
		GitHubID: githubID,
		Name:     name,
	}, s.userRepo.FindByGitHubID)
}

func (s *AuthServiceImpl) getOrCreate(
	ctx context.Context,
	provider, column, providerID string,
	emailVerified bool,
	candidate *model.User,
	findByProvider func(context.Context, string) (*model.User, error),
) (*model.User, error) {
	u, err := findByProvider(ctx, providerID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find %s user: %w", provider, err)
	}

	if u, err := s.userRepo.FindByEmail(ctx, candidate.Email); err == nil {
		if !emailVerified {
			return nil, ErrUnverifiedProviderEmail
		}
		if err := s.userRepo.UpdateProviderID(ctx, u.ID, column, providerID); err != nil {
			return nil, fmt.Errorf("link %s: %w", provider, err)
		}
		if !u.IsVerified() {
			// The password was set by someone who never proved the mailbox.
			if u.HasPassword() {
				if err := s.userRepo.UpdatePassword(ctx, u.ID, ""); err != nil {
					return nil, fmt.Errorf("drop unverified password: %w", err)
				}
				u.PasswordHash = ""
			}
			if err := s.userRepo.MarkEmailVerified(ctx, u.ID); err != nil {
				return nil, fmt.Errorf("mark verified: %w", err)
			}
			now := s.now()
			u.EmailVerifiedAt = &now
		}
		slog.Info("provider linked to existing user", "user_id", u.ID, "provider", provider)
		return u, nil
	}

	if emailVerified {
		now := s.now()
		candidate.EmailVerifiedAt = &now
	}
	if err := s.userRepo.Create(ctx, candidate); err != nil {
		slog.Error("create user failed", "provider", provider, "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", candidate.ID, "provider", provider)
	return candidate, nil
}
