package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned for a JWT whose exp claim has passed.
var ErrTokenExpired = errors.New("token has expired")

// TokenInfo is what can be read from a backend session token without its key.
type TokenInfo struct {
	// JWT is false for opaque tokens; the other fields are then zero.
	JWT       bool
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken reads the registered claims of a backend token. The signature is
// not verified: the backend owns the key and rejects forged tokens itself.
// Opaque (non-JWT) tokens are accepted as they are.
func InspectToken(tokenString string, now time.Time) (*TokenInfo, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	if strings.Count(tokenString, ".") != 2 {
		return &TokenInfo{}, nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return &TokenInfo{}, nil
	}

	info := &TokenInfo{JWT: true, Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		if !now.Before(info.ExpiresAt) {
			return info, ErrTokenExpired
		}
	}
	return info, nil
}
