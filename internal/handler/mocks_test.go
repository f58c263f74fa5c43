package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/auth"
	"github.com/royaldevs/backend/pkg/relay"
)

const testUUID = "8f14e45f-ceea-467a-9af0-7c5d2f1b2a10"

var timeFarFuture = time.Now().Add(24 * time.Hour)

// asUser returns r with a signed-in user (and the admin flag) in its context.
func asUser(r *http.Request, userID string, isAdmin bool) *http.Request {
	ctx := auth.WithUserID(r.Context(), userID)
	ctx = auth.WithIsAdmin(ctx, isAdmin)
	return r.WithContext(ctx)
}

// --- services ---

type mockContactService struct {
	submitFunc       func(ctx context.Context, form validation.ContactForm) (*model.ContactRequest, error)
	getFunc          func(ctx context.Context, id string) (*model.ContactRequest, error)
	listFunc         func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockContactService) Submit(ctx context.Context, form validation.ContactForm) (*model.ContactRequest, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, form)
	}
	return &model.ContactRequest{ID: testUUID}, nil
}
func (m *mockContactService) Get(ctx context.Context, id string) (*model.ContactRequest, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.ContactRequest{ID: id}, nil
}
func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}
func (m *mockContactService) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}
func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

var _ service.ContactService = (*mockContactService)(nil)

type mockReviewService struct {
	submitFunc       func(ctx context.Context, userID string, form validation.ReviewForm) (*model.Review, error)
	listApprovedFunc func(ctx context.Context) ([]*model.Review, error)
	listAllFunc      func(ctx context.Context, limit, offset int) ([]*model.Review, error)
	setApprovedFunc  func(ctx context.Context, id string, approved bool) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockReviewService) Submit(ctx context.Context, userID string, form validation.ReviewForm) (*model.Review, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, userID, form)
	}
	return &model.Review{ID: testUUID, UserID: userID}, nil
}
func (m *mockReviewService) ListApproved(ctx context.Context) ([]*model.Review, error) {
	if m.listApprovedFunc != nil {
		return m.listApprovedFunc(ctx)
	}
	return nil, nil
}
func (m *mockReviewService) ListAll(ctx context.Context, limit, offset int) ([]*model.Review, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx, limit, offset)
	}
	return nil, nil
}
func (m *mockReviewService) SetApproved(ctx context.Context, id string, approved bool) error {
	if m.setApprovedFunc != nil {
		return m.setApprovedFunc(ctx, id, approved)
	}
	return nil
}
func (m *mockReviewService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

var _ service.ReviewService = (*mockReviewService)(nil)

type mockShowcaseService struct {
	listProjectsFunc func(ctx context.Context, featuredOnly bool) ([]*model.Project, error)
	listTeamFunc     func(ctx context.Context) ([]*model.TeamMember, error)
}

func (m *mockShowcaseService) ListProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error) {
	if m.listProjectsFunc != nil {
		return m.listProjectsFunc(ctx, featuredOnly)
	}
	return []*model.Project{}, nil
}
func (m *mockShowcaseService) ListTeam(ctx context.Context) ([]*model.TeamMember, error) {
	if m.listTeamFunc != nil {
		return m.listTeamFunc(ctx)
	}
	return []*model.TeamMember{}, nil
}

var _ service.ShowcaseService = (*mockShowcaseService)(nil)

type mockAuthService struct {
	signUpFunc func(ctx context.Context, form validation.SignUpForm) (*model.User, error)
	signInFunc func(ctx context.Context, form validation.SignInForm) (*model.User, error)
	verifyFunc func(ctx context.Context, token string) (*model.User, error)
	resendFunc func(ctx context.Context, email string) error
	googleFunc func(ctx context.Context, info *service.GoogleUserInfo) (*model.User, error)
	githubFunc func(ctx context.Context, info *service.GitHubUserInfo) (*model.User, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, form validation.SignUpForm) (*model.User, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, form)
	}
	return &model.User{ID: "u1", Email: form.Email, Name: form.FullName}, nil
}
func (m *mockAuthService) SignIn(ctx context.Context, form validation.SignInForm) (*model.User, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, form)
	}
	return &model.User{ID: "u1", Email: form.Email}, nil
}
func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, token)
	}
	return &model.User{ID: "u1"}, nil
}
func (m *mockAuthService) ResendVerification(ctx context.Context, email string) error {
	if m.resendFunc != nil {
		return m.resendFunc(ctx, email)
	}
	return nil
}
func (m *mockAuthService) GetOrCreateUserFromGoogle(ctx context.Context, info *service.GoogleUserInfo) (*model.User, error) {
	if m.googleFunc != nil {
		return m.googleFunc(ctx, info)
	}
	return &model.User{ID: "u-google", Email: info.Email}, nil
}
func (m *mockAuthService) GetOrCreateUserFromGitHub(ctx context.Context, info *service.GitHubUserInfo) (*model.User, error) {
	if m.githubFunc != nil {
		return m.githubFunc(ctx, info)
	}
	return &model.User{ID: "u-github", Email: info.Email}, nil
}

var _ service.AuthService = (*mockAuthService)(nil)

type mockSessionManager struct {
	created []string
	deleted []string
	err     error
}

func (m *mockSessionManager) CreateSession(_ context.Context, userID string) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, userID)
	return &model.Session{Token: "tok-" + userID, UserID: userID, ExpiresAt: timeFarFuture}, nil
}
func (m *mockSessionManager) DeleteSession(_ context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

// --- repositories and collaborators ---

type mockUserRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not found")
}
func (m *mockUserRepository) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("not found")
}
func (m *mockUserRepository) FindByGoogleID(context.Context, string) (*model.User, error) {
	return nil, errors.New("not found")
}
func (m *mockUserRepository) FindByGitHubID(context.Context, string) (*model.User, error) {
	return nil, errors.New("not found")
}
func (m *mockUserRepository) Create(context.Context, *model.User) error { return nil }
func (m *mockUserRepository) UpdateProviderID(context.Context, string, string, string) error {
	return nil
}
func (m *mockUserRepository) UpdatePassword(context.Context, string, string) error { return nil }
func (m *mockUserRepository) MarkEmailVerified(context.Context, string) error { return nil }
func (m *mockUserRepository) CreateVerification(context.Context, string, string, time.Time) error {
	return nil
}
func (m *mockUserRepository) ConsumeVerification(context.Context, string) (string, error) {
	return "", errors.New("not found")
}

type mockSessionValidator struct {
	validateFunc func(ctx context.Context, token string) (string, error)
}

func (m *mockSessionValidator) ValidateSession(ctx context.Context, token string) (string, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, token)
	}
	return "", errors.New("invalid")
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, n relay.Notification) error
	calls      []relay.Notification
}

func (m *mockNotifier) Notify(ctx context.Context, n relay.Notification) error {
	m.calls = append(m.calls, n)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, n)
	}
	return nil
}

type mockScraper struct {
	runFunc   func(ctx context.Context, req service.ScrapeRequest) (json.RawMessage, error)
	indexFunc func(ctx context.Context) (json.RawMessage, error)
}

func (m *mockScraper) Run(ctx context.Context, req service.ScrapeRequest) (json.RawMessage, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, req)
	}
	return json.RawMessage(`{"success":true}`), nil
}
func (m *mockScraper) IndexSite(ctx context.Context) (json.RawMessage, error) {
	if m.indexFunc != nil {
		return m.indexFunc(ctx)
	}
	return json.RawMessage(`{"success":true,"id":"crawl-1"}`), nil
}

type mockPageViewRecorder struct {
	ok    bool
	paths []string
	ids   []string
}

func (m *mockPageViewRecorder) Record(_ context.Context, path, visitorID, _, _ string) bool {
	m.paths = append(m.paths, path)
	m.ids = append(m.ids, visitorID)
	return m.ok
}

type countingRecorder struct {
	outcomes  []string
	pageViews int
}

func (c *countingRecorder) Submission(outcome string) { c.outcomes = append(c.outcomes, outcome) }
func (c *countingRecorder) PageView() { c.pageViews++ }
