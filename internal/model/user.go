package model

import "time"

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	PasswordHash    string     `json:"-"`
	GoogleID        string     `json:"-"`
	GitHubID        string     `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasPassword reports whether the account can sign in with email and password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IsVerified reports whether the owner of the address has been confirmed,
// either through the emailed link or by an OAuth provider.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
