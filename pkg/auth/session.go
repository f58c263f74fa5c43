package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

// SessionDuration is how long a sign-in stays valid.
const SessionDuration = 30 * 24 * time.Hour

const sessionCookieName = "royaldevs_session"

// SessionValidator resolves an opaque session token to a user ID.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (string, error)
}

// SessionCookieName is the name of the session cookie.
func SessionCookieName() string {
	return sessionCookieName
}

// GenerateSessionToken returns 32 random bytes, hex encoded.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SetSessionCookie writes the session cookie. secure should be true behind HTTPS.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
