package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/pkg/auth"
)

// SessionService manages DB-backed user sessions.
// Implements auth.SessionValidator.
type SessionService struct {
	repo repository.SessionRepository
	now  func() time.Time
}

// NewSessionService creates a SessionService.
func NewSessionService(repo repository.SessionRepository) *SessionService {
	return &SessionService{repo: repo, now: time.Now}
}

var _ auth.SessionValidator = (*SessionService)(nil)

// CreateSession generates a new opaque token, stores it and returns the session.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		log.Printf("[SESSION] CreateSession: token generation error: %v", err)
		return nil, err
	}
	now := s.now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.SessionDuration),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		log.Printf("[SESSION] CreateSession: insert error: %v", err)
		return nil, err
	}
	log.Printf("[SESSION] CreateSession: userID=%s expiresAt=%v", userID, session.ExpiresAt)
	return session, nil
}

// ValidateSession returns the user ID for a live session. Expired sessions
// are deleted on sight.
func (s *SessionService) ValidateSession(ctx context.Context, token string) (string, error) {
	session, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return "", errors.New("invalid_session")
	}
	if s.now().After(session.ExpiresAt) {
		log.Printf("[SESSION] ValidateSession: expired session for userID=%s", session.UserID)
		_ = s.repo.DeleteByToken(ctx, token)
		return "", errors.New("session_expired")
	}
	return session.UserID, nil
}

// DeleteSession removes a session (logout).
func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}

// PurgeExpired deletes every expired session.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[SESSION] PurgeExpired: removed %d sessions", n)
	}
	return n, nil
}
