package service

import (
	"context"

	"github.com/sangkips/stockdesk/internal/application/detail"
	"github.com/sangkips/stockdesk/internal/application/lineeditor"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService handles sale-related operations
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	printer     *PrinterService
	busy        *listing.Busy
	logger      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	printer *PrinterService,
	busy *listing.Busy,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		printer:     printer,
		busy:        busy,
		logger:      logger,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID    string
	PaymentMethod string
	Discount      decimal.Decimal
	Paid          decimal.Decimal
	Lines         []DraftLine
}

func saleEditor(busy *listing.Busy, logger *zap.Logger) lineeditor.Config {
	return lineeditor.Config{Name: "sale", StockCeiling: true, Busy: busy, Logger: logger}
}

// ListSales returns one page of sales with the page total
func (s *SaleService) ListSales(ctx context.Context, in ListInput) (*ListResult[entity.Sale], error) {
	res, err := loadPage(ctx, "sales", s.busy, s.logger, s.saleRepo.List, in)
	if err != nil {
		return nil, err
	}
	return withPageTotal(res, func(sale entity.Sale) decimal.Decimal { return sale.Total }), nil
}

// GetSale returns a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	v := s.view()
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	return v.Render()
}

// Invoice renders the sales invoice in format (json or a layout).
func (s *SaleService) Invoice(ctx context.Context, id, format string) (*Rendered, error) {
	v := s.view()
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	sale, err := v.Render()
	if err != nil {
		return nil, err
	}
	return s.printer.RenderReceipt(s.printer.SaleReceipt(sale), format)
}

// ReturnReceipt renders the receipt of a sale return.
func (s *SaleService) ReturnReceipt(ctx context.Context, id, format string) (*Rendered, error) {
	v := detail.New(s.saleRepo.GetReturn, detail.Options{Name: "Sale return", Busy: s.busy, Logger: s.logger})
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	ret, err := v.Render()
	if err != nil {
		return nil, err
	}
	return s.printer.RenderReceipt(s.printer.ReturnReceipt(ret), format)
}

// PrintInvoice sends the sales invoice to the configured printer.
func (s *SaleService) PrintInvoice(ctx context.Context, id string, layout printer.Layout) (*entity.Receipt, error) {
	if layout == "" {
		layout = s.printer.DefaultLayout()
	}
	v := s.view()
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	var receipt *entity.Receipt
	job, err := detail.Print(v, layout, func(sale *entity.Sale) *printer.Sheet {
		receipt = s.printer.SaleReceipt(sale)
		return s.printer.ReceiptSheet(receipt)
	})
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, job); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// Draft recomputes the sale lines as entered
func (s *SaleService) Draft(ctx context.Context, lines []DraftLine) (*Draft, error) {
	e, err := replay(ctx, s.productRepo, saleEditor(s.busy, s.logger), salePrice, lines)
	if err != nil {
		return nil, err
	}
	return draftOf(e), nil
}

// CreateSale validates the lines and creates the sale
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if input.PaymentMethod == "" {
		input.PaymentMethod = "cash"
	}
	if input.Discount.IsNegative() || input.Paid.IsNegative() {
		return nil, apperror.NewFieldError("paid", "Amounts cannot be negative")
	}

	e, err := replay(ctx, s.productRepo, saleEditor(s.busy, s.logger), salePrice, input.Lines)
	if err != nil {
		return nil, err
	}
	if input.Discount.GreaterThan(e.GrandTotal()) {
		return nil, apperror.NewFieldError("discount", "Discount cannot exceed the total")
	}

	var created *entity.Sale
	err = e.Submit(ctx, func(ctx context.Context, lines []lineeditor.Line, total decimal.Decimal) error {
		sale, err := s.saleRepo.Create(ctx, &entity.NewSale{
			CustomerID:    input.CustomerID,
			PaymentMethod: input.PaymentMethod,
			Lines:         toTransactionLines(lines),
			Discount:      input.Discount,
			Total:         total.Sub(input.Discount),
			Paid:          input.Paid,
		})
		created = sale
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale created", zap.String("invoice_no", created.InvoiceNo))
	return created, nil
}

func (s *SaleService) view() *detail.View[entity.Sale] {
	return detail.New(s.saleRepo.GetByID, detail.Options{Name: "Sale", Busy: s.busy, Logger: s.logger})
}
