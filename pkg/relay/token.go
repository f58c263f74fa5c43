package relay

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of a token issued for a single relay call.
const TokenTTL = 5 * time.Minute

// ServiceRole is the only role accepted by the relay.
const ServiceRole = "service"

// ErrUnauthorized is returned when a bearer token is missing or invalid.
var ErrUnauthorized = errors.New("relay: unauthorized")

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 service token valid for ttl.
func IssueToken(secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("relay: empty secret")
	}
	now := time.Now()
	c := claims{
		Role: ServiceRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// VerifyToken checks the signature, expiry and role of a service token.
func VerifyToken(token string, secret []byte) error {
	if token == "" || len(secret) == 0 {
		return ErrUnauthorized
	}
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return ErrUnauthorized
	}
	if c.Role != ServiceRole {
		return ErrUnauthorized
	}
	return nil
}
