package service

import (
	"context"
	"sync"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/sangkips/stockdesk/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Stock {5,10} at sale price {100,90}.
func twoBatchProduct() entity.Product {
	return entity.Product{
		ID:   "p1",
		Name: "Paracetamol",
		Batches: []entity.Batch{
			{ID: "b1", BatchNo: "B-01", Quantity: 5, CostPrice: dec("70"), SalePrice: dec("100")},
			{ID: "b2", BatchNo: "B-02", Quantity: 10, CostPrice: dec("60"), SalePrice: dec("90")},
		},
	}
}

type fakeProducts struct {
	options  []entity.Product
	lowStock []entity.LowStockItem
	err      error
}

func (f *fakeProducts) List(_ context.Context, p repository.ListParams) (*pagination.PageResult[entity.Product], error) {
	return &pagination.PageResult[entity.Product]{Items: f.options, Total: int64(len(f.options))}, f.err
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.options {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperror.NewNotFoundError("Product")
}

func (f *fakeProducts) Options(context.Context) ([]entity.Product, error) {
	return f.options, f.err
}

func (f *fakeProducts) LowStock(context.Context) ([]entity.LowStockItem, error) {
	return f.lowStock, f.err
}

type fakeSales struct {
	mu      sync.Mutex
	sale    *entity.Sale
	ret     *entity.SaleReturn
	page    []entity.Sale
	total   int64
	created []*entity.NewSale
	params  []repository.ListParams
}

func (f *fakeSales) List(_ context.Context, p repository.ListParams) (*pagination.PageResult[entity.Sale], error) {
	f.mu.Lock()
	f.params = append(f.params, p)
	f.mu.Unlock()
	return &pagination.PageResult[entity.Sale]{Items: f.page, Total: f.total}, nil
}

func (f *fakeSales) GetByID(context.Context, string) (*entity.Sale, error) { return f.sale, nil }

func (f *fakeSales) GetReturn(context.Context, string) (*entity.SaleReturn, error) { return f.ret, nil }

func (f *fakeSales) Create(_ context.Context, s *entity.NewSale) (*entity.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, s)
	return &entity.Sale{ID: "s-new", InvoiceNo: "INV-0001", Total: s.Total, Lines: s.Lines}, nil
}

type fakePurchases struct {
	purchase *entity.Purchase
	page     []entity.Purchase
	created  []*entity.NewPurchase
}

func (f *fakePurchases) List(context.Context, repository.ListParams) (*pagination.PageResult[entity.Purchase], error) {
	return &pagination.PageResult[entity.Purchase]{Items: f.page, Total: int64(len(f.page))}, nil
}

func (f *fakePurchases) GetByID(context.Context, string) (*entity.Purchase, error) {
	return f.purchase, nil
}

func (f *fakePurchases) Create(_ context.Context, p *entity.NewPurchase) (*entity.Purchase, error) {
	f.created = append(f.created, p)
	return &entity.Purchase{ID: "pu-new", PurchaseNo: "PUR-0001", Total: p.Total}, nil
}

type fakeDamages struct {
	created []*entity.NewDamage
}

func (f *fakeDamages) List(context.Context, repository.ListParams) (*pagination.PageResult[entity.Damage], error) {
	return &pagination.PageResult[entity.Damage]{}, nil
}

func (f *fakeDamages) GetByID(context.Context, string) (*entity.Damage, error) { return nil, nil }

func (f *fakeDamages) Create(_ context.Context, d *entity.NewDamage) (*entity.Damage, error) {
	f.created = append(f.created, d)
	return &entity.Damage{ID: "d-new", DamageNo: "DMG-0001", Total: d.Total}, nil
}

type fakeExpenses struct {
	types   []entity.ExpenseType
	page    []entity.Expense
	calls   []string
	deleted []string
}

func (f *fakeExpenses) List(context.Context, repository.ListParams) (*pagination.PageResult[entity.Expense], error) {
	f.calls = append(f.calls, "list")
	return &pagination.PageResult[entity.Expense]{Items: f.page, Total: int64(len(f.page))}, nil
}

func (f *fakeExpenses) ListTypes(context.Context) ([]entity.ExpenseType, error) {
	f.calls = append(f.calls, "types")
	return f.types, nil
}

func (f *fakeExpenses) CreateType(_ context.Context, t *entity.ExpenseType) error {
	f.calls = append(f.calls, "create")
	t.ID = "t-new"
	f.types = append(f.types, *t)
	return nil
}

func (f *fakeExpenses) UpdateType(_ context.Context, id string, t *entity.ExpenseType) error {
	f.calls = append(f.calls, "update")
	for i := range f.types {
		if f.types[i].ID == id {
			f.types[i].Name = t.Name
		}
	}
	return nil
}

func (f *fakeExpenses) DeleteType(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReports struct {
	report *entity.BusinessReport
	dues   []entity.PartyBalance
	ranges []period.Range
}

func (f *fakeReports) Business(_ context.Context, r period.Range) (*entity.BusinessReport, error) {
	f.ranges = append(f.ranges, r)
	if f.report == nil {
		return nil, nil
	}
	rep := *f.report
	rep.Start, rep.End = r.Start, r.End
	return &rep, nil
}

func (f *fakeReports) Receivables(context.Context, repository.ListParams) (*pagination.PageResult[entity.PartyBalance], error) {
	return &pagination.PageResult[entity.PartyBalance]{Items: f.dues, Total: int64(len(f.dues))}, nil
}

func (f *fakeReports) Payables(context.Context, repository.ListParams) (*pagination.PageResult[entity.PartyBalance], error) {
	return &pagination.PageResult[entity.PartyBalance]{}, nil
}

type recordingPrinter struct {
	jobs []printer.Job
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, job printer.Job) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }

func newTestPrinterService(p printer.Printer) *PrinterService {
	return NewPrinterService(p, "spool", printer.Layout58mm, StoreInfo{Name: "Corner Pharmacy", Phone: "01700000000"}, zap.NewNop())
}
