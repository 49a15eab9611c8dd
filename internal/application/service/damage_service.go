package service

import (
	"context"

	"github.com/sangkips/stockdesk/internal/application/detail"
	"github.com/sangkips/stockdesk/internal/application/lineeditor"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DamageService handles damaged and expired stock entries
type DamageService struct {
	damageRepo  repository.DamageRepository
	productRepo repository.ProductRepository
	busy        *listing.Busy
	logger      *zap.Logger
}

// NewDamageService creates a new damage service
func NewDamageService(damageRepo repository.DamageRepository, productRepo repository.ProductRepository, busy *listing.Busy, logger *zap.Logger) *DamageService {
	return &DamageService{
		damageRepo:  damageRepo,
		productRepo: productRepo,
		busy:        busy,
		logger:      logger,
	}
}

// CreateDamageInput represents the create damage input
type CreateDamageInput struct {
	Note  string
	Lines []DraftLine
}

// Damages are valued at batch cost and cannot exceed the batch stock.
func damageEditor(busy *listing.Busy, logger *zap.Logger) lineeditor.Config {
	return lineeditor.Config{Name: "damage", StockCeiling: true, Busy: busy, Logger: logger}
}

// ListDamages returns one page of damage entries with the page total
func (s *DamageService) ListDamages(ctx context.Context, in ListInput) (*ListResult[entity.Damage], error) {
	res, err := loadPage(ctx, "damages", s.busy, s.logger, s.damageRepo.List, in)
	if err != nil {
		return nil, err
	}
	return withPageTotal(res, func(d entity.Damage) decimal.Decimal { return d.Total }), nil
}

// GetDamage returns a damage entry with its lines
func (s *DamageService) GetDamage(ctx context.Context, id string) (*entity.Damage, error) {
	v := detail.New(s.damageRepo.GetByID, detail.Options{Name: "Damage", Busy: s.busy, Logger: s.logger})
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	return v.Render()
}

// Draft recomputes the damage lines as entered
func (s *DamageService) Draft(ctx context.Context, lines []DraftLine) (*Draft, error) {
	e, err := replay(ctx, s.productRepo, damageEditor(s.busy, s.logger), costPrice, lines)
	if err != nil {
		return nil, err
	}
	return draftOf(e), nil
}

// CreateDamage validates the lines and records the damage
func (s *DamageService) CreateDamage(ctx context.Context, input *CreateDamageInput) (*entity.Damage, error) {
	e, err := replay(ctx, s.productRepo, damageEditor(s.busy, s.logger), costPrice, input.Lines)
	if err != nil {
		return nil, err
	}

	var created *entity.Damage
	err = e.Submit(ctx, func(ctx context.Context, lines []lineeditor.Line, total decimal.Decimal) error {
		d, err := s.damageRepo.Create(ctx, &entity.NewDamage{
			Lines: toTransactionLines(lines),
			Total: total,
			Note:  input.Note,
		})
		created = d
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("damage recorded", zap.String("damage_no", created.DamageNo))
	return created, nil
}
