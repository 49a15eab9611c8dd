package entity

import (
	"time"

	"github.com/sangkips/stockdesk/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Sale is a customer invoice.
type Sale struct {
	ID            string            `json:"id"`
	InvoiceNo     string            `json:"invoice_no"`
	Date          time.Time         `json:"date"`
	Customer      *Party            `json:"customer,omitempty"`
	Cashier       string            `json:"cashier,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Lines         []TransactionLine `json:"lines,omitempty"`
	SubTotal      decimal.Decimal   `json:"sub_total"`
	Discount      decimal.Decimal   `json:"discount"`
	VAT           decimal.Decimal   `json:"vat"`
	Total         decimal.Decimal   `json:"total"`
	Paid          decimal.Decimal   `json:"paid"`
	Due           decimal.Decimal   `json:"due"`
}

// PaymentStatus derives the settlement state of the sale.
func (s *Sale) PaymentStatus() enum.PaymentStatus {
	return enum.PaymentStatusOf(s.Total, s.Paid)
}

// NewSale is the create payload for a sale.
type NewSale struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	Lines         []TransactionLine `json:"lines"`
	Discount      decimal.Decimal   `json:"discount"`
	Total         decimal.Decimal   `json:"total"`
	Paid          decimal.Decimal   `json:"paid"`
}

// SaleReturn is goods returned against a sale.
type SaleReturn struct {
	ID        string            `json:"id"`
	ReturnNo  string            `json:"return_no"`
	SaleID    string            `json:"sale_id"`
	InvoiceNo string            `json:"invoice_no"`
	Date      time.Time         `json:"date"`
	Customer  *Party            `json:"customer,omitempty"`
	Lines     []TransactionLine `json:"lines,omitempty"`
	Total     decimal.Decimal   `json:"total"`
	Reason    string            `json:"reason,omitempty"`
}
