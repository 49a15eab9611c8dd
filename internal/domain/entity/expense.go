package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType is a category of operating expense (rent, salary, utilities).
type ExpenseType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// Expense is one recorded expense.
type Expense struct {
	ID       string          `json:"id"`
	TypeID   string          `json:"type_id"`
	TypeName string          `json:"type_name"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Note     string          `json:"note,omitempty"`
}

// PartyBalance is a customer receivable or supplier payable.
type PartyBalance struct {
	PartyID         string          `json:"party_id"`
	Name            string          `json:"name"`
	Mobile          string          `json:"mobile,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Paid            decimal.Decimal `json:"paid"`
	Due             decimal.Decimal `json:"due"`
	LastTransaction *time.Time      `json:"last_transaction,omitempty"`
}
