package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/internal/validation"
	"github.com/royaldevs/backend/pkg/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookieName = "oauth_state"

// generateOAuthState returns a random state string for CSRF protection.
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func (h *AuthHandler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secure,
	})
}

// verifyOAuthState compares the state cookie with the query parameter.
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

var githubEndpoint = oauth2.Endpoint{
	AuthURL:  "https://github.com/login/oauth/authorize",
	TokenURL: "https://github.com/login/oauth/access_token",
}

// SessionManager creates and revokes login sessions.
type SessionManager interface {
	CreateSession(ctx context.Context, userID string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// AuthHandler handles sign-up, sign-in, OAuth and logout.
type AuthHandler struct {
	authService   service.AuthService
	sessions      SessionManager
	googleConfig  *oauth2.Config
	githubConfig  *oauth2.Config
	googleInfoURL string
	githubAPIBase string
	frontendURL   string
	secure        bool
	enableEmail   bool
}

// AuthConfig holds the OAuth credentials and URLs used by AuthHandler.
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
	BackendURL         string
	FrontendURL        string
	// Secure marks cookies Secure; set in production.
	Secure bool
	// EnableEmail turns on email/password sign-up and sign-in.
	EnableEmail bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService service.AuthService, sessions SessionManager, cfg AuthConfig) *AuthHandler {
	redirectBase := cfg.BackendURL
	if redirectBase == "" {
		redirectBase = "http://localhost:8080"
	}

	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		googleConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  redirectBase + "/api/auth/google/callback",
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		githubConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  redirectBase + "/api/auth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githubEndpoint,
		},
		googleInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		githubAPIBase: "https://api.github.com",
		frontendURL:   cfg.FrontendURL,
		secure:        cfg.Secure,
		enableEmail:   cfg.EnableEmail,
	}
}

// emailEnabled answers 404 when email/password login is switched off.
func (h *AuthHandler) emailEnabled(w http.ResponseWriter) bool {
	if !h.enableEmail {
		writeError(w, http.StatusNotFound, "email_login_disabled")
		return false
	}
	return true
}

// startSession creates a session for user and sets the cookie.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) error {
	session, err := h.sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(w, session.Token, session.ExpiresAt, h.secure)
	return nil
}

func (h *AuthHandler) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.frontendURL+"/auth?error="+code, http.StatusFound)
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleLoginURL handles GET /api/auth/google/login.
func (h *AuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)
	writeJSON(w, http.StatusOK, map[string]string{"url": h.googleConfig.AuthCodeURL(state)})
}

// GoogleCallback handles GET /api/auth/google/callback.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	client, ok := h.exchange(w, r, h.googleConfig)
	if !ok {
		return
	}

	var info googleUserInfo
	if err := getJSON(client, h.googleInfoURL, &info); err != nil {
		log.Printf("[AUTH] GoogleCallback: userinfo error: %v", err)
		h.redirectError(w, r, "userinfo_failed")
		return
	}

	user, err := h.authService.GetOrCreateUserFromGoogle(r.Context(), &service.GoogleUserInfo{
		Sub:           info.ID,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		Name:          info.Name,
	})
	if err != nil {
		log.Printf("[AUTH] GoogleCallback: user error: %v", err)
		h.redirectError(w, r, oauthUserErrorCode(err))
		return
	}
	if err := h.startSession(w, r, user); err != nil {
		h.redirectError(w, r, "session_failed")
		return
	}
	http.Redirect(w, r, h.frontendURL+"/", http.StatusFound)
}

// GitHubLoginURL handles GET /api/auth/github/login.
func (h *AuthHandler) GitHubLoginURL(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)
	writeJSON(w, http.StatusOK, map[string]string{"url": h.githubConfig.AuthCodeURL(state)})
}

type githubUserInfo struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GitHubCallback handles GET /api/auth/github/callback.
func (h *AuthHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	client, ok := h.exchange(w, r, h.githubConfig)
	if !ok {
		return
	}

	var info githubUserInfo
	if err := getJSON(client, h.githubAPIBase+"/user", &info); err != nil {
		log.Printf("[AUTH] GitHubCallback: userinfo error: %v", err)
		h.redirectError(w, r, "userinfo_failed")
		return
	}

	// Private emails come back null; ask the emails endpoint instead.
	if info.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if getJSON(client, h.githubAPIBase+"/user/emails", &emails) == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					info.Email = e.Email
					break
				}
			}
		}
	}

	user, err := h.authService.GetOrCreateUserFromGitHub(r.Context(), &service.GitHubUserInfo{
		ID:    info.ID,
		Login: info.Login,
		Email: info.Email,
		Name:  info.Name,
	})
	if err != nil {
		log.Printf("[AUTH] GitHubCallback: user error: %v", err)
		h.redirectError(w, r, oauthUserErrorCode(err))
		return
	}
	if err := h.startSession(w, r, user); err != nil {
		h.redirectError(w, r, "session_failed")
		return
	}
	http.Redirect(w, r, h.frontendURL+"/", http.StatusFound)
}

// exchange checks the state, trades the code for a token and returns an
// authenticated client. On failure it has already redirected.
func (h *AuthHandler) exchange(w http.ResponseWriter, r *http.Request, cfg *oauth2.Config) (*http.Client, bool) {
	if !verifyOAuthState(r) {
		clearStateCookie(w)
		h.redirectError(w, r, "invalid_state")
		return nil, false
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectError(w, r, "no_code")
		return nil, false
	}

	token, err := cfg.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("[AUTH] token exchange failed: %v", err)
		h.redirectError(w, r, "exchange_failed")
		return nil, false
	}
	return cfg.Client(r.Context(), token), true
}

func oauthUserErrorCode(err error) string {
	if errors.Is(err, service.ErrUnverifiedProviderEmail) {
		return "email_not_verified"
	}
	return "create_user_failed"
}

func getJSON(client *http.Client, url string, v any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New(resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

type signUpResponse struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	VerificationRequired bool   `json:"verification_required"`
}

// SignUp handles POST /api/auth/signup. No session is started; the user
// signs in after following the emailed confirmation link.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if !h.emailEnabled(w) {
		return
	}
	var form validation.SignUpForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user, err := h.authService.SignUp(r.Context(), form)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "validation_failed", Fields: verrs})
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email_taken")
		default:
			writeError(w, http.StatusInternalServerError, "signup_failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, signUpResponse{ID: user.ID, Email: user.Email, VerificationRequired: true})
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !h.emailEnabled(w) {
		return
	}
	var form validation.SignInForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user, err := h.authService.SignIn(r.Context(), form)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "validation_failed", Fields: verrs})
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
		case errors.Is(err, service.ErrEmailNotVerified):
			writeError(w, http.StatusForbidden, "email_not_confirmed")
		default:
			writeError(w, http.StatusInternalServerError, "signin_failed")
		}
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// VerifyEmail handles GET /api/auth/verify?token=..., the link in the
// confirmation email, and redirects back to the sign-in page.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if !h.emailEnabled(w) {
		return
	}
	user, err := h.authService.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerificationToken) {
			h.redirectError(w, r, "invalid_token")
			return
		}
		log.Printf("[AUTH] VerifyEmail: %v", err)
		h.redirectError(w, r, "verify_failed")
		return
	}
	log.Printf("[AUTH] VerifyEmail: userID=%s verified", user.ID)
	http.Redirect(w, r, h.frontendURL+"/auth?verified=true", http.StatusFound)
}

// ResendVerification handles POST /api/auth/verify/resend. The answer is
// the same whether or not the address is registered.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	if !h.emailEnabled(w) {
		return
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeError(w, http.StatusBadRequest, "email_required")
		return
	}
	if err := h.authService.ResendVerification(r.Context(), body.Email); err != nil {
		log.Printf("[AUTH] ResendVerification: %v", err)
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"ok": true})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName()); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteSession(r.Context(), cookie.Value); err != nil {
			log.Printf("[AUTH] Logout: delete session error: %v", err)
		}
	}
	auth.ClearSessionCookie(w, h.secure)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
