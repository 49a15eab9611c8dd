package service

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/stockdesk/internal/application/detail"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	busy        *listing.Busy
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, busy *listing.Busy, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		busy:        busy,
		logger:      logger,
	}
}

// ListProducts returns one page of products
func (s *ProductService) ListProducts(ctx context.Context, in ListInput) (*ListResult[entity.Product], error) {
	in.Range = nil
	return loadPage(ctx, "products", s.busy, s.logger, s.productRepo.List, in)
}

// GetProduct returns a product with its batches
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	v := detail.New(s.productRepo.GetByID, detail.Options{Name: "Product", Busy: s.busy, Logger: s.logger})
	if err := v.Load(ctx, id); err != nil {
		return nil, err
	}
	return v.Render()
}

// Options returns every product with batches for the line editors
func (s *ProductService) Options(ctx context.Context) ([]entity.Product, error) {
	release := s.busy.Acquire()
	defer release()
	return s.productRepo.Options(ctx)
}

var lowStockColumns = listing.Columns[entity.LowStockItem]{
	"name":     func(a, b entity.LowStockItem) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"code":     func(a, b entity.LowStockItem) int { return cmp.Compare(a.Code, b.Code) },
	"category": func(a, b entity.LowStockItem) int { return cmp.Compare(a.Category, b.Category) },
	"stock":    func(a, b entity.LowStockItem) int { return cmp.Compare(a.Stock, b.Stock) },
	"alert":    func(a, b entity.LowStockItem) int { return cmp.Compare(a.AlertQuantity, b.AlertQuantity) },
	"shortage": func(a, b entity.LowStockItem) int { return cmp.Compare(a.Shortage(), b.Shortage()) },
}

// LowStock returns the low-stock report sorted client-side.
func (s *ProductService) LowStock(ctx context.Context, sort listing.Sort) ([]entity.LowStockItem, error) {
	release := s.busy.Acquire()
	items, err := s.productRepo.LowStock(ctx)
	release()
	if err != nil {
		return nil, err
	}
	return listing.SortRows(items, sort, lowStockColumns), nil
}

// LowStockWorkbook exports the sorted low-stock report as an XLSX workbook.
func (s *ProductService) LowStockWorkbook(ctx context.Context, sort listing.Sort) ([]byte, error) {
	items, err := s.LowStock(ctx, sort)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Low Stock"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := []any{"Code", "Product", "Category", "Unit", "Stock", "Alert Qty", "Shortage"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}
	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{it.Code, it.Name, it.Category, it.Unit, it.Stock, it.AlertQuantity, it.Shortage()}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
