package utils

import (
	"github.com/google/uuid"
)

// NewRequestID generates a request id
func NewRequestID() string {
	return uuid.New().String()
}

// ValidRequestID reports whether an incoming X-Request-ID can be reused.
func ValidRequestID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
