package auth

import (
	"context"
	"net/http"
	"strings"
)

const isAdminKey contextKey = "is_admin"

// AccountLookup returns the email address of a user and whether that
// address has been verified.
type AccountLookup func(ctx context.Context, userID string) (email string, verified bool, err error)

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext reports whether the authenticated user is an admin.
// Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// ParseAdminEmails splits a comma separated ADMIN_EMAILS value.
func ParseAdminEmails(s string) []string {
	var out []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, strings.ToLower(e))
		}
	}
	return out
}

// IsAdminEmail reports whether email is in adminEmails (case-insensitive).
func IsAdminEmail(adminEmails []string, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, a := range adminEmails {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// AdminMiddleware resolves the admin flag for the user in the context.
// Lookup failures, unverified addresses and anonymous requests leave the
// flag false.
func AdminMiddleware(adminEmails []string, lookup AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin := false
			if userID, ok := UserIDFromContext(r.Context()); ok && len(adminEmails) > 0 {
				if email, verified, err := lookup(r.Context(), userID); err == nil && verified {
					isAdmin = IsAdminEmail(adminEmails, email)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithIsAdmin(r.Context(), isAdmin)))
		})
	}
}
