package repository

import (
	"context"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
)

type expenseRepository struct {
	client *backend.Client
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(client *backend.Client) domainRepo.ExpenseRepository {
	return &expenseRepository{client: client}
}

func (r *expenseRepository) List(ctx context.Context, params domainRepo.ListParams) (*pagination.PageResult[entity.Expense], error) {
	return fetchPage[entity.Expense](ctx, r.client, backend.ExpenseList, params)
}

func (r *expenseRepository) ListTypes(ctx context.Context) ([]entity.ExpenseType, error) {
	types, _, err := backend.List[entity.ExpenseType](ctx, r.client, backend.Request{Endpoint: backend.ExpenseTypeList})
	return types, err
}

func (r *expenseRepository) CreateType(ctx context.Context, t *entity.ExpenseType) error {
	return backend.Exec(ctx, r.client, backend.Request{Endpoint: backend.CreateExpenseType, Body: t})
}

func (r *expenseRepository) UpdateType(ctx context.Context, id string, t *entity.ExpenseType) error {
	return backend.Exec(ctx, r.client, backend.Request{
		Endpoint: backend.UpdateExpenseType,
		Params:   []string{id},
		Body:     t,
	})
}

func (r *expenseRepository) DeleteType(ctx context.Context, id string) error {
	return backend.Exec(ctx, r.client, backend.Request{
		Endpoint: backend.DeleteExpenseType,
		Params:   []string{id},
	})
}
