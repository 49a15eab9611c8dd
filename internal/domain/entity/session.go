package entity

import "time"

// Session holds the two identifiers cached for a signed-in user: the backend session
// token and the active business. Both are issued by the external login flow.
type Session struct {
	Token      string    `json:"-"`
	BusinessID string    `json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsExpired checks if the session has passed its expiry
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
