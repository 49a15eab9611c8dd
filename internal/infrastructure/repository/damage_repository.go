package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
)

type damageRepository struct {
	client *backend.Client
}

// NewDamageRepository creates a new damage repository
func NewDamageRepository(client *backend.Client) domainRepo.DamageRepository {
	return &damageRepository{client: client}
}

func (r *damageRepository) List(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.Damage], error) {
	return fetchPage[entity.Damage](ctx, r.client, backend.DamageList, params)
}

func (r *damageRepository) GetByID(ctx context.Context, id string) (*entity.Damage, error) {
	return backend.One[entity.Damage](ctx, r.client, backend.Request{
		Endpoint: backend.DamageDetails,
		Params:   []string{id},
	})
}

func (r *damageRepository) Create(ctx context.Context, damage *entity.NewDamage) (*entity.Damage, error) {
	env, err := r.client.Do(ctx, backend.Request{Endpoint: backend.CreateDamage, Body: damage})
	if err != nil {
		return nil, err
	}
	return decodeCreated[entity.Damage](env)
}
