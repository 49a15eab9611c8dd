package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Damage records stock written off as damaged or expired, valued at batch cost.
type Damage struct {
	ID       string            `json:"id"`
	DamageNo string            `json:"damage_no"`
	Date     time.Time         `json:"date"`
	Lines    []TransactionLine `json:"lines,omitempty"`
	Total    decimal.Decimal   `json:"total"`
	Note     string            `json:"note,omitempty"`
}

// NewDamage is the create payload for a damage entry.
type NewDamage struct {
	Lines []TransactionLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
	Note  string            `json:"note,omitempty"`
}
