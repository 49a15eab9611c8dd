package entity

import "time"

// IdempotencyKey remembers the response to a create request so a retried
// submission replays it instead of creating a second record.
type IdempotencyKey struct {
	Key          string    `gorm:"primaryKey;size:128" json:"key"`
	BusinessID   string    `gorm:"primaryKey;size:64" json:"business_id"`
	Endpoint     string    `gorm:"size:128;not null" json:"endpoint"`
	ResponseCode int       `gorm:"not null" json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
}

// TableName specifies the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (k *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(k.ExpiresAt)
}
