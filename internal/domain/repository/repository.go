package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
)

// ListParams carries the list query and optional date filter of a list page.
type ListParams struct {
	Query pagination.ListQuery
	Range *period.Range
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	List(ctx context.Context, params ListParams) (*pagination.PageResult[entity.Product], error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Options returns every product with its batches, for line-editor pickers.
	Options(ctx context.Context) ([]entity.Product, error)
	LowStock(ctx context.Context) ([]entity.LowStockItem, error)
}

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	List(ctx context.Context, params ListParams) (*pagination.PageResult[entity.Purchase], error)
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	Create(ctx context.Context, purchase *entity.NewPurchase) (*entity.Purchase, error)
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	List(ctx context.Context, params ListParams) (*pagination.PageResult[entity.Sale], error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetReturn(ctx context.Context, id string) (*entity.SaleReturn, error)
	Create(ctx context.Context, sale *entity.NewSale) (*entity.Sale, error)
}

// DamageRepository defines the interface for damage data operations
type DamageRepository interface {
	List(ctx context.Context, params ListParams) (*pagination.PageResult[entity.Damage], error)
	GetByID(ctx context.Context, id string) (*entity.Damage, error)
	Create(ctx context.Context, damage *entity.NewDamage) (*entity.Damage, error)
}

// ExpenseRepository defines the interface for expenses and expense types
type ExpenseRepository interface {
	List(ctx context.Context, params ListParams) (*pagination.PageResult[entity.Expense], error)
	ListTypes(ctx context.Context) ([]entity.ExpenseType, error)
	CreateType(ctx context.Context, t *entity.ExpenseType) error
	UpdateType(ctx context.Context, id string, t *entity.ExpenseType) error
	DeleteType(ctx context.Context, id string) error
}

// ReportRepository defines the interface for report queries
type ReportRepository interface {
	Business(ctx context.Context, r period.Range) (*entity.BusinessReport, error)
	Receivables(ctx context.Context, params ListParams) (*pagination.PageResult[entity.PartyBalance], error)
	Payables(ctx context.Context, params ListParams) (*pagination.PageResult[entity.PartyBalance], error)
}

// SessionRepository caches sessions by token
type SessionRepository interface {
	Get(ctx context.Context, token string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, token string) error
}

// IdempotencyRepository stores replayable create responses per business
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key, businessID string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
}
