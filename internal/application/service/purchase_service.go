package service

import (
	"context"
	"time"

	"github.com/sangkips/stockdesk/internal/application/detail"
	"github.com/sangkips/stockdesk/internal/application/lineeditor"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseService handles purchase-related operations
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	printer      *PrinterService
	busy         *listing.Busy
	logger       *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	printer *PrinterService,
	busy *listing.Busy,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		printer:      printer,
		busy:         busy,
		logger:       logger,
	}
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	SupplierID string
	Date       time.Time
	Paid       decimal.Decimal
	Note       string
	Lines      []DraftLine
}

func purchaseEditor(busy *listing.Busy, logger *zap.Logger) lineeditor.Config {
	return lineeditor.Config{Name: "purchase", PriceEditable: true, Busy: busy, Logger: logger}
}

// ListPurchases returns one page of purchases with the page total
func (s *PurchaseService) ListPurchases(ctx context.Context, in ListInput) (*ListResult[entity.Purchase], error) {
	res, err := loadPage(ctx, "purchases", s.busy, s.logger, s.purchaseRepo.List, in)
	if err != nil {
		return nil, err
	}
	return withPageTotal(res, func(p entity.Purchase) decimal.Decimal { return p.Total }), nil
}

// GetPurchase returns a purchase with its lines
func (s *PurchaseService) GetPurchase(ctx context.Context, id string) (*entity.Purchase, error) {
	v := s.view()
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	return v.Render()
}

// Invoice renders the purchase invoice in format (json or a layout).
func (s *PurchaseService) Invoice(ctx context.Context, id, format string) (*Rendered, error) {
	v := s.view()
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	p, err := v.Render()
	if err != nil {
		return nil, err
	}
	return s.printer.RenderReceipt(s.printer.PurchaseReceipt(p), format)
}

// Draft recomputes the purchase lines as entered
func (s *PurchaseService) Draft(ctx context.Context, lines []DraftLine) (*Draft, error) {
	e, err := replay(ctx, s.productRepo, purchaseEditor(s.busy, s.logger), costPrice, lines)
	if err != nil {
		return nil, err
	}
	return draftOf(e), nil
}

// CreatePurchase validates the lines and creates the purchase
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if input.SupplierID == "" {
		return nil, apperror.NewFieldError("supplier_id", "Supplier is required")
	}
	if input.Paid.IsNegative() {
		return nil, apperror.NewFieldError("paid", "Paid amount cannot be negative")
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	e, err := replay(ctx, s.productRepo, purchaseEditor(s.busy, s.logger), costPrice, input.Lines)
	if err != nil {
		return nil, err
	}

	var created *entity.Purchase
	err = e.Submit(ctx, func(ctx context.Context, lines []lineeditor.Line, total decimal.Decimal) error {
		p, err := s.purchaseRepo.Create(ctx, &entity.NewPurchase{
			SupplierID: input.SupplierID,
			Date:       date.Format(period.DateLayout),
			Lines:      toTransactionLines(lines),
			Total:      total,
			Paid:       input.Paid,
			Note:       input.Note,
		})
		created = p
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase created", zap.String("purchase_no", created.PurchaseNo))
	return created, nil
}

func (s *PurchaseService) view() *detail.View[entity.Purchase] {
	return detail.New(s.purchaseRepo.GetByID, detail.Options{Name: "Purchase", Busy: s.busy, Logger: s.logger})
}
