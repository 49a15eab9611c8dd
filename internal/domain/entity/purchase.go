package entity

import (
	"time"

	"github.com/sangkips/stockdesk/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Party is a customer or supplier referenced by a transaction.
type Party struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile,omitempty"`
	Address string `json:"address,omitempty"`
}

// TransactionLine is one quantity/price row of a purchase, sale, return or damage,
// tied to a specific batch.
type TransactionLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	BatchID     string          `json:"batch_id"`
	BatchNo     string          `json:"batch_no,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Purchase represents a purchase from a supplier
type Purchase struct {
	ID         string            `json:"id"`
	PurchaseNo string            `json:"purchase_no"`
	Date       time.Time         `json:"date"`
	Supplier   *Party            `json:"supplier,omitempty"`
	Lines      []TransactionLine `json:"lines,omitempty"`
	SubTotal   decimal.Decimal   `json:"sub_total"`
	Discount   decimal.Decimal   `json:"discount"`
	VAT        decimal.Decimal   `json:"vat"`
	Total      decimal.Decimal   `json:"total"`
	Paid       decimal.Decimal   `json:"paid"`
	Due        decimal.Decimal   `json:"due"`
	Note       string            `json:"note,omitempty"`
}

// PaymentStatus derives the settlement state of the purchase.
func (p *Purchase) PaymentStatus() enum.PaymentStatus {
	return enum.PaymentStatusOf(p.Total, p.Paid)
}

// NewPurchase is the create payload for a purchase.
type NewPurchase struct {
	SupplierID string            `json:"supplier_id"`
	Date       string            `json:"date"`
	Lines      []TransactionLine `json:"lines"`
	Total      decimal.Decimal   `json:"total"`
	Paid       decimal.Decimal   `json:"paid"`
	Note       string            `json:"note,omitempty"`
}
