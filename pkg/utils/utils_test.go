package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestInspectToken(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("opaque token", func(t *testing.T) {
		info, err := InspectToken("a1b2c3d4", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.JWT {
			t.Fatalf("opaque token reported as JWT")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := InspectToken("  ", now); err == nil {
			t.Fatalf("expected error for empty token")
		}
	})

	t.Run("future expiry", func(t *testing.T) {
		exp := now.Add(2 * time.Hour)
		tok := signed(t, jwt.RegisteredClaims{Subject: "u-1", ExpiresAt: jwt.NewNumericDate(exp)})
		info, err := InspectToken("Bearer "+tok, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !info.JWT || info.Subject != "u-1" || !info.ExpiresAt.Equal(exp) {
			t.Fatalf("unexpected info: %+v", info)
		}
	})

	t.Run("expired", func(t *testing.T) {
		tok := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))})
		if _, err := InspectToken(tok, now); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	if !ValidRequestID(id) {
		t.Fatalf("generated id %q is not valid", id)
	}
	if ValidRequestID("not-an-id") {
		t.Fatalf("expected invalid id to be rejected")
	}
}
