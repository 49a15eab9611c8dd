package service

import (
	"context"
	"strings"

	"github.com/sangkips/stockdesk/internal/application/crud"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService handles expenses and expense types
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	busy        *listing.Busy
	logger      *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, busy *listing.Busy, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		busy:        busy,
		logger:      logger,
	}
}

// SaveExpenseTypeInput represents a create or update of an expense type
type SaveExpenseTypeInput struct {
	// ID selects update; empty creates.
	ID   string
	Name string
	Note string
}

// ListExpenses returns one page of expenses with the page total
func (s *ExpenseService) ListExpenses(ctx context.Context, in ListInput) (*ListResult[entity.Expense], error) {
	res, err := loadPage(ctx, "expenses", s.busy, s.logger, s.expenseRepo.List, in)
	if err != nil {
		return nil, err
	}
	return withPageTotal(res, func(e entity.Expense) decimal.Decimal { return e.Amount }), nil
}

// ListTypes returns the expense types whose name contains search.
func (s *ExpenseService) ListTypes(ctx context.Context, search string) ([]entity.ExpenseType, error) {
	l := s.types()
	if err := l.Refresh(ctx); err != nil {
		return nil, err
	}
	return l.Filter(search), nil
}

// SaveType creates or updates an expense type and returns the refreshed list.
func (s *ExpenseService) SaveType(ctx context.Context, input *SaveExpenseTypeInput) ([]entity.ExpenseType, error) {
	l := s.types()
	item := entity.ExpenseType{
		ID:   input.ID,
		Name: strings.TrimSpace(input.Name),
		Note: input.Note,
	}
	if err := l.Save(ctx, item, input.ID); err != nil {
		return nil, err
	}
	return l.Items(), nil
}

// DeleteType deletes an expense type once confirmed. A declined request makes no
// backend call and reports deleted=false.
func (s *ExpenseService) DeleteType(ctx context.Context, id string, confirm bool) (deleted bool, err error) {
	if id == "" {
		return false, apperror.NewFieldError("id", "Expense type is required")
	}
	c := s.types().RequestDelete(id)
	if !confirm {
		c.Decline()
		s.logger.Debug("expense type delete declined", zap.String("id", id))
		return false, nil
	}
	if err := c.Confirm(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ExpenseService) types() *crud.List[entity.ExpenseType] {
	return crud.New(crud.Backend[entity.ExpenseType]{
		List: s.expenseRepo.ListTypes,
		Create: func(ctx context.Context, t entity.ExpenseType) error {
			return s.expenseRepo.CreateType(ctx, &t)
		},
		Update: func(ctx context.Context, id string, t entity.ExpenseType) error {
			return s.expenseRepo.UpdateType(ctx, id, &t)
		},
		Delete: s.expenseRepo.DeleteType,
	}, crud.Options[entity.ExpenseType]{
		Name: "Expense type",
		Key:  func(t entity.ExpenseType) string { return t.Name },
		Validate: func(t entity.ExpenseType) []apperror.FieldError {
			if t.Name == "" {
				return []apperror.FieldError{{Field: "name", Message: "Name is required"}}
			}
			return nil
		},
		Busy:   s.busy,
		Logger: s.logger,
	})
}
