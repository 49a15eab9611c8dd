package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock item as reported by the backend.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Stock         int64           `json:"stock"`
	AlertQuantity int64           `json:"alert_quantity"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CreatedAt     time.Time       `json:"created_at"`

	// Batches are ordered oldest first.
	Batches []Batch `json:"batches,omitempty"`
}

// Batch is a priced, stock-bearing lot beneath a product. Each batch carries its own
// cost and sale price.
type Batch struct {
	ID         string          `json:"id"`
	BatchNo    string          `json:"batch_no"`
	Quantity   int64           `json:"quantity"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IsLowStock reports whether stock has reached the alert quantity.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.AlertQuantity
}

// LowStockItem is one row of the low-stock report.
type LowStockItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Category      string `json:"category,omitempty"`
	Unit          string `json:"unit,omitempty"`
	Stock         int64  `json:"stock"`
	AlertQuantity int64  `json:"alert_quantity"`
}

// Shortage is how many units are missing to reach the alert quantity.
func (i LowStockItem) Shortage() int64 {
	return max(i.AlertQuantity-i.Stock, 0)
}
