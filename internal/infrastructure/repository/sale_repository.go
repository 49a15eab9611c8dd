package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
)

type saleRepository struct {
	client *backend.Client
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(client *backend.Client) domainRepo.SaleRepository {
	return &saleRepository{client: client}
}

func (r *saleRepository) List(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.Sale], error) {
	return fetchPage[entity.Sale](ctx, r.client, backend.SaleList, params)
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return backend.One[entity.Sale](ctx, r.client, backend.Request{
		Endpoint: backend.SaleDetails,
		Params:   []string{id},
	})
}

func (r *saleRepository) GetReturn(ctx context.Context, id string) (*entity.SaleReturn, error) {
	return backend.One[entity.SaleReturn](ctx, r.client, backend.Request{
		Endpoint: backend.SaleReturnDetails,
		Params:   []string{id},
	})
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.NewSale) (*entity.Sale, error) {
	env, err := r.client.Do(ctx, backend.Request{Endpoint: backend.CreateSale, Body: sale})
	if err != nil {
		return nil, err
	}
	return decodeCreated[entity.Sale](env)
}
