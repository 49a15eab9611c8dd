package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftLineRequest is one editor line as entered
type DraftLineRequest struct {
	ProductID string           `json:"product_id" binding:"required"`
	BatchID   string           `json:"batch_id"`
	Quantity  int64            `json:"quantity" binding:"min=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// DraftRequest represents a line-editor recompute request
type DraftRequest struct {
	Lines []DraftLineRequest `json:"lines" binding:"dive"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID    string             `json:"customer_id"`
	PaymentMethod string             `json:"payment_method" binding:"omitempty,max=32"`
	Discount      decimal.Decimal    `json:"discount"`
	Paid          decimal.Decimal    `json:"paid"`
	Lines         []DraftLineRequest `json:"lines" binding:"dive"`
}

// CreatePurchaseRequest represents a purchase creation request
type CreatePurchaseRequest struct {
	SupplierID string             `json:"supplier_id" binding:"required"`
	Date       *time.Time         `json:"date"`
	Paid       decimal.Decimal    `json:"paid"`
	Note       string             `json:"note" binding:"max=500"`
	Lines      []DraftLineRequest `json:"lines" binding:"dive"`
}

// CreateDamageRequest represents a damage entry request
type CreateDamageRequest struct {
	Note  string             `json:"note" binding:"max=500"`
	Lines []DraftLineRequest `json:"lines" binding:"dive"`
}
