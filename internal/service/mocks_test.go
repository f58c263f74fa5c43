package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/pkg/firecrawl"
	"github.com/royaldevs/backend/pkg/mailer"
	"github.com/royaldevs/backend/pkg/relay"
)

// ---------------------------------------------------------------------------
// mockContactRepository
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	createFunc       func(ctx context.Context, req *model.ContactRequest) error
	findByIDFunc     func(ctx context.Context, id string) (*model.ContactRequest, error)
	listFunc         func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockContactRepository) Create(ctx context.Context, req *model.ContactRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	req.ID = "contact-1"
	return nil
}

func (m *mockContactRepository) FindByID(ctx context.Context, id string) (*model.ContactRequest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockUserRepository
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	findByIDFunc            func(ctx context.Context, id string) (*model.User, error)
	findByGoogleIDFunc      func(ctx context.Context, googleID string) (*model.User, error)
	findByGitHubIDFunc      func(ctx context.Context, githubID string) (*model.User, error)
	findByEmailFunc         func(ctx context.Context, email string) (*model.User, error)
	createFunc              func(ctx context.Context, user *model.User) error
	updateProviderIDFunc    func(ctx context.Context, userID, column, value string) error
	updatePasswordFunc      func(ctx context.Context, userID, hash string) error
	markEmailVerifiedFunc   func(ctx context.Context, userID string) error
	createVerificationFunc  func(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	consumeVerificationFunc func(ctx context.Context, tokenHash string) (string, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	if m.findByGoogleIDFunc != nil {
		return m.findByGoogleIDFunc(ctx, googleID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByGitHubID(ctx context.Context, githubID string) (*model.User, error) {
	if m.findByGitHubIDFunc != nil {
		return m.findByGitHubIDFunc(ctx, githubID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "new-user"
	return nil
}

func (m *mockUserRepository) UpdateProviderID(ctx context.Context, userID, column, value string) error {
	if m.updateProviderIDFunc != nil {
		return m.updateProviderIDFunc(ctx, userID, column, value)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, userID, hash)
	}
	return nil
}

func (m *mockUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	if m.markEmailVerifiedFunc != nil {
		return m.markEmailVerifiedFunc(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) CreateVerification(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	if m.createVerificationFunc != nil {
		return m.createVerificationFunc(ctx, userID, tokenHash, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) ConsumeVerification(ctx context.Context, tokenHash string) (string, error) {
	if m.consumeVerificationFunc != nil {
		return m.consumeVerificationFunc(ctx, tokenHash)
	}
	return "", repository.ErrNotFound
}

// ---------------------------------------------------------------------------
// mockSessionRepository
// ---------------------------------------------------------------------------

type mockSessionRepository struct {
	createFunc        func(ctx context.Context, s *model.Session) error
	findByTokenFunc   func(ctx context.Context, token string) (*model.Session, error)
	deleteByTokenFunc func(ctx context.Context, token string) error
	deleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) Create(ctx context.Context, s *model.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	if m.findByTokenFunc != nil {
		return m.findByTokenFunc(ctx, token)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.deleteByTokenFunc != nil {
		return m.deleteByTokenFunc(ctx, token)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// mockReviewRepository / mockShowcaseRepository / mockPageViewRepository
// ---------------------------------------------------------------------------

type mockReviewRepository struct {
	createFunc       func(ctx context.Context, r *model.Review) error
	listApprovedFunc func(ctx context.Context, limit int) ([]*model.Review, error)
	setApprovedFunc  func(ctx context.Context, id string, approved bool) error
}

func (m *mockReviewRepository) Create(ctx context.Context, r *model.Review) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	return nil
}

func (m *mockReviewRepository) ListApproved(ctx context.Context, limit int) ([]*model.Review, error) {
	if m.listApprovedFunc != nil {
		return m.listApprovedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockReviewRepository) List(ctx context.Context, limit, offset int) ([]*model.Review, error) {
	return nil, nil
}

func (m *mockReviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	if m.setApprovedFunc != nil {
		return m.setApprovedFunc(ctx, id, approved)
	}
	return nil
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockShowcaseRepository struct {
	listProjectsFunc func(ctx context.Context, featuredOnly bool) ([]*model.Project, error)
	listTeamFunc     func(ctx context.Context) ([]*model.TeamMember, error)
}

func (m *mockShowcaseRepository) ListProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error) {
	if m.listProjectsFunc != nil {
		return m.listProjectsFunc(ctx, featuredOnly)
	}
	return nil, nil
}

func (m *mockShowcaseRepository) ListTeamMembers(ctx context.Context) ([]*model.TeamMember, error) {
	if m.listTeamFunc != nil {
		return m.listTeamFunc(ctx)
	}
	return nil, nil
}

type mockPageViewRepository struct {
	createFunc func(ctx context.Context, pv *model.PageView) error
}

func (m *mockPageViewRepository) Create(ctx context.Context, pv *model.PageView) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, pv)
	}
	return nil
}

// ---------------------------------------------------------------------------
// outbound client mocks
// ---------------------------------------------------------------------------

type mockSender struct {
	sent     []mailer.Email
	sendFunc func(ctx context.Context, e mailer.Email) (string, error)
}

func (m *mockSender) Send(ctx context.Context, e mailer.Email) (string, error) {
	m.sent = append(m.sent, e)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, e)
	}
	return "msg-1", nil
}

type mockVerifier struct {
	tokens   []string
	users    []*model.User
	sendFunc func(ctx context.Context, u *model.User, token string) error
}

func (m *mockVerifier) SendVerification(ctx context.Context, u *model.User, token string) error {
	m.users = append(m.users, u)
	m.tokens = append(m.tokens, token)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, u, token)
	}
	return nil
}

type mockNotifier struct {
	calls      []relay.Notification
	notifyFunc func(ctx context.Context, n relay.Notification) error
}

func (m *mockNotifier) Notify(ctx context.Context, n relay.Notification) error {
	m.calls = append(m.calls, n)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, n)
	}
	return nil
}

type mockCrawler struct {
	calls   int
	runFunc func(ctx context.Context, action firecrawl.Action, url string, opts firecrawl.Options) (json.RawMessage, error)
}

func (m *mockCrawler) Run(ctx context.Context, action firecrawl.Action, url string, opts firecrawl.Options) (json.RawMessage, error) {
	m.calls++
	if m.runFunc != nil {
		return m.runFunc(ctx, action, url, opts)
	}
	return json.RawMessage(`{"success":true}`), nil
}
