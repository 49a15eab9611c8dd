// Package session caches the backend token and active business of a signed-in user.
package session

import (
	"encoding/hex"
	"time"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	"golang.org/x/crypto/blake2b"
)

// Key derives the storage key of a token. Raw tokens are never persisted.
func Key(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// record is the stored form of a session.
type record struct {
	BusinessID string    `json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func toRecord(s *entity.Session) record {
	return record{BusinessID: s.BusinessID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt}
}

func (r record) session(token string) *entity.Session {
	return &entity.Session{
		Token:      token,
		BusinessID: r.BusinessID,
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
	}
}

// ttl is the remaining lifetime of s, or 0 for sessions without expiry.
func ttl(s *entity.Session, now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
