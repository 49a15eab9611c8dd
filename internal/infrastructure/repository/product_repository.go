package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
)

type productRepository struct {
	client *backend.Client
}

// NewProductRepository creates a new product repository
func NewProductRepository(client *backend.Client) domainRepo.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.Product], error) {
	return fetchPage[entity.Product](ctx, r.client, backend.ProductList, params)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return backend.One[entity.Product](ctx, r.client, backend.Request{
		Endpoint: backend.ProductDetails,
		Params:   []string{id},
	})
}

// Options returns the dropdown list used by line editors; each product carries its batches.
func (r *productRepository) Options(ctx context.Context) ([]entity.Product, error) {
	products, _, err := backend.List[entity.Product](ctx, r.client, backend.Request{Endpoint: backend.ProductDropdown})
	return products, err
}

func (r *productRepository) LowStock(ctx context.Context) ([]entity.LowStockItem, error) {
	items, _, err := backend.List[entity.LowStockItem](ctx, r.client, backend.Request{Endpoint: backend.LowStockReport})
	return items, err
}
