package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
)

type purchaseRepository struct {
	client *backend.Client
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(client *backend.Client) domainRepo.PurchaseRepository {
	return &purchaseRepository{client: client}
}

func (r *purchaseRepository) List(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.Purchase], error) {
	return fetchPage[entity.Purchase](ctx, r.client, backend.PurchaseList, params)
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return backend.One[entity.Purchase](ctx, r.client, backend.Request{
		Endpoint: backend.PurchaseDetails,
		Params:   []string{id},
	})
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.NewPurchase) (*entity.Purchase, error) {
	env, err := r.client.Do(ctx, backend.Request{Endpoint: backend.CreatePurchase, Body: purchase})
	if err != nil {
		return nil, err
	}
	return decodeCreated[entity.Purchase](env)
}
