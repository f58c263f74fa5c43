package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/auth"
	"golang.org/x/oauth2"
)

func newTestAuthHandler(svc service.AuthService, sessions SessionManager) *AuthHandler {
	return NewAuthHandler(svc, sessions, AuthConfig{
		GoogleClientID:     "google-client-id",
		GoogleClientSecret: "google-secret",
		GitHubClientID:     "github-client-id",
		GitHubClientSecret: "github-secret",
		BackendURL:         "http://localhost:8080",
		FrontendURL:        "http://localhost:3000",
		EnableEmail:        true,
	})
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_LoginURL_SetsStateCookie(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{}, &mockSessionManager{})

	for name, fn := range map[string]http.HandlerFunc{
		"google": h.GoogleLoginURL,
		"github": h.GitHubLoginURL,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			fn(rec, httptest.NewRequest("GET", "/api/auth/"+name+"/login", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			state := findCookie(rec, oauthStateCookieName)
			if state == nil || state.Value == "" {
				t.Fatal("expected oauth_state cookie")
			}
			if !state.HttpOnly {
				t.Error("oauth_state cookie should be HttpOnly")
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(body["url"], "state=") {
				t.Errorf("expected state in url, got %q", body["url"])
			}
			if !strings.Contains(body["url"], "redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fapi%2Fauth%2F"+name+"%2Fcallback") {
				t.Errorf("unexpected redirect in %q", body["url"])
			}
		})
	}
}

func TestAuthHandler_Callback_InvalidState(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{}, &mockSessionManager{})

	req := httptest.NewRequest("GET", "/api/auth/google/callback?state=abc&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "different"})
	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "http://localhost:3000/auth?error=invalid_state" {
		t.Errorf("unexpected redirect %q", loc)
	}
}

func TestAuthHandler_Callback_MissingCode(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{}, &mockSessionManager{})

	req := httptest.NewRequest("GET", "/api/auth/github/callback?state=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "abc"})
	rec := httptest.NewRecorder()
	h.GitHubCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "http://localhost:3000/auth?error=no_code" {
		t.Errorf("unexpected redirect %q", loc)
	}
}

func TestAuthHandler_GitHubCallback_PrivateEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gh-token","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":42,"login":"sipho","email":null,"name":""}`))
	})
	mux.HandleFunc("GET /user/emails", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"email":"old@example.com","primary":false,"verified":true},{"email":"sipho@example.com","primary":true,"verified":true}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var gotInfo *service.GitHubUserInfo
	svc := &mockAuthService{
		githubFunc: func(_ context.Context, info *service.GitHubUserInfo) (*model.User, error) {
			gotInfo = info
			return &model.User{ID: "u-42", Email: info.Email}, nil
		},
	}
	sessions := &mockSessionManager{}
	h := newTestAuthHandler(svc, sessions)
	h.githubConfig.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}
	h.githubAPIBase = srv.URL

	req := httptest.NewRequest("GET", "/api/auth/github/callback?state=s1&code=c1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "s1"})
	rec := httptest.NewRecorder()
	h.GitHubCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "http://localhost:3000/" {
		t.Fatalf("expected redirect to frontend, got %q", loc)
	}
	if gotInfo == nil || gotInfo.ID != 42 || gotInfo.Login != "sipho" || gotInfo.Email != "sipho@example.com" {
		t.Errorf("unexpected user info: %+v", gotInfo)
	}
	if len(sessions.created) != 1 || sessions.created[0] != "u-42" {
		t.Errorf("expected session for u-42, got %v", sessions.created)
	}
	if c := findCookie(rec, auth.SessionCookieName()); c == nil || c.Value != "tok-u-42" {
		t.Errorf("expected session cookie, got %+v", c)
	}
}

func TestAuthHandler_SignUp(t *testing.T) {
	sessions := &mockSessionManager{}
	h := newTestAuthHandler(&mockAuthService{}, sessions)

	body := `{"fullName":"Lerato M","email":"lerato@example.com","password":"secret1","confirmPassword":"secret1"}`
	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if c := findCookie(rec, auth.SessionCookieName()); c != nil {
		t.Error("sign-up must not start a session before the email is confirmed")
	}
	if len(sessions.created) != 0 {
		t.Errorf("expected no session, got %v", sessions.created)
	}
	var resp signUpResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.VerificationRequired || resp.Email != "lerato@example.com" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestAuthHandler_SignUp_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validation.Errors{"password": "Password must be at least 6 characters"}, http.StatusBadRequest},
		{"taken", service.ErrEmailTaken, http.StatusConflict},
		{"store", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				signUpFunc: func(context.Context, validation.SignUpForm) (*model.User, error) { return nil, tt.err },
			}
			sessions := &mockSessionManager{}
			h := newTestAuthHandler(svc, sessions)

			rec := httptest.NewRecorder()
			h.SignUp(rec, httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(`{}`)))

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			if len(sessions.created) != 0 {
				t.Error("no session should be created on failure")
			}
		})
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		signInFunc: func(context.Context, validation.SignInForm) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	h := newTestAuthHandler(svc, &mockSessionManager{})

	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest("POST", "/api/auth/signin", strings.NewReader(`{"email":"a@b.co","password":"wrongpw"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_SignIn_EmailNotConfirmed(t *testing.T) {
	svc := &mockAuthService{
		signInFunc: func(context.Context, validation.SignInForm) (*model.User, error) {
			return nil, service.ErrEmailNotVerified
		},
	}
	sessions := &mockSessionManager{}
	h := newTestAuthHandler(svc, sessions)

	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest("POST", "/api/auth/signin", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`)))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email_not_confirmed") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
	if len(sessions.created) != 0 {
		t.Error("no session for an unconfirmed account")
	}
}

func TestAuthHandler_EmailLoginDisabled(t *testing.T) {
	svc := &mockAuthService{
		signUpFunc: func(context.Context, validation.SignUpForm) (*model.User, error) {
			t.Error("SignUp must not reach the service when email login is off")
			return nil, nil
		},
		signInFunc: func(context.Context, validation.SignInForm) (*model.User, error) {
			t.Error("SignIn must not reach the service when email login is off")
			return nil, nil
		},
	}
	sessions := &mockSessionManager{}
	h := NewAuthHandler(svc, sessions, AuthConfig{FrontendURL: "http://localhost:3000"})

	tests := []struct {
		name string
		fn   http.HandlerFunc
		req  *http.Request
	}{
		{"signup", h.SignUp, httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(`{"fullName":"Lerato M","email":"l@x.co","password":"secret1","confirmPassword":"secret1"}`))},
		{"signin", h.SignIn, httptest.NewRequest("POST", "/api/auth/signin", strings.NewReader(`{"email":"l@x.co","password":"secret1"}`))},
		{"verify", h.VerifyEmail, httptest.NewRequest("GET", "/api/auth/verify?token=t", nil)},
		{"resend", h.ResendVerification, httptest.NewRequest("POST", "/api/auth/verify/resend", strings.NewReader(`{"email":"l@x.co"}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec, tt.req)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})
	}
	if len(sessions.created) != 0 {
		t.Error("no session should be created")
	}
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	svc := &mockAuthService{
		verifyFunc: func(_ context.Context, token string) (*model.User, error) {
			if token == "good" {
				return &model.User{ID: "u1"}, nil
			}
			return nil, service.ErrInvalidVerificationToken
		},
	}
	h := newTestAuthHandler(svc, &mockSessionManager{})

	tests := []struct {
		token string
		want  string
	}{
		{"good", "http://localhost:3000/auth?verified=true"},
		{"bad", "http://localhost:3000/auth?error=invalid_token"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.VerifyEmail(rec, httptest.NewRequest("GET", "/api/auth/verify?token="+tt.token, nil))
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != tt.want {
			t.Errorf("token %s: got %d %q", tt.token, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestAuthHandler_ResendVerification(t *testing.T) {
	var got string
	svc := &mockAuthService{
		resendFunc: func(_ context.Context, email string) error {
			got = email
			return errors.New("mail down")
		},
	}
	h := newTestAuthHandler(svc, &mockSessionManager{})

	rec := httptest.NewRecorder()
	h.ResendVerification(rec, httptest.NewRequest("POST", "/api/auth/verify/resend", strings.NewReader(`{"email":"l@x.co"}`)))
	if rec.Code != http.StatusAccepted || got != "l@x.co" {
		t.Errorf("expected 202 for l@x.co, got %d %q", rec.Code, got)
	}

	rec = httptest.NewRecorder()
	h.ResendVerification(rec, httptest.NewRequest("POST", "/api/auth/verify/resend", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without email, got %d", rec.Code)
	}
}

func TestAuthHandler_GoogleCallback_UnverifiedProviderEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"g-token","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"g-1","email":"admin@royaldevs.com","verified_email":false,"name":"M"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var gotInfo *service.GoogleUserInfo
	svc := &mockAuthService{
		googleFunc: func(_ context.Context, info *service.GoogleUserInfo) (*model.User, error) {
			gotInfo = info
			return nil, service.ErrUnverifiedProviderEmail
		},
	}
	sessions := &mockSessionManager{}
	h := newTestAuthHandler(svc, sessions)
	h.googleConfig.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}
	h.googleInfoURL = srv.URL + "/userinfo"

	req := httptest.NewRequest("GET", "/api/auth/google/callback?state=s1&code=c1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "s1"})
	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "http://localhost:3000/auth?error=email_not_verified" {
		t.Errorf("unexpected redirect %q", loc)
	}
	if gotInfo == nil || gotInfo.EmailVerified {
		t.Errorf("expected unverified flag passed through, got %+v", gotInfo)
	}
	if len(sessions.created) != 0 {
		t.Error("no session for a rejected OAuth login")
	}
}

func TestAuthHandler_SignIn_SessionFailure(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{}, &mockSessionManager{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest("POST", "/api/auth/signin", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_DeletesSession(t *testing.T) {
	sessions := &mockSessionManager{}
	h := newTestAuthHandler(&mockAuthService{}, sessions)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: "tok-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "tok-1" {
		t.Errorf("expected tok-1 deleted, got %v", sessions.deleted)
	}
	if c := findCookie(rec, auth.SessionCookieName()); c == nil || c.MaxAge >= 0 {
		t.Errorf("expected session cookie to be cleared, got %+v", c)
	}
}
