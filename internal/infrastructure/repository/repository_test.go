package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/shopspring/decimal"
)

func newBackend(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := backend.NewClient(backend.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestPageScope(t *testing.T) {
	rng := period.Range{}.WithBounds(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	req := PageScope(backend.SaleList, domainRepo.ListParams{
		Query: pagination.ListQuery{Page: 0, Limit: 33, Search: "INV-1"},
		Range: &rng,
	})
	want := []string{"1", "20", "INV-1"}
	for i, p := range want {
		if req.Params[i] != p {
			t.Fatalf("param %d: expected %q, got %q", i, p, req.Params[i])
		}
	}
	if req.Query.Get("startDate") != "2024-03-01" || req.Query.Get("endDate") != "2024-03-31" {
		t.Fatalf("unexpected query %v", req.Query)
	}
}

func TestProductListTruncatesOversizedPage(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ProductList/1/20/0" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		rows := make([]entity.Product, 25)
		for i := range rows {
			rows[i].ID = string(rune('a' + i))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "Success", "total": 25, "data": rows})
	})

	page, err := NewProductRepository(c).List(context.Background(), domainRepo.ListParams{Query: pagination.DefaultQuery()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 20 || page.Total != 25 {
		t.Fatalf("expected 20 items of 25, got %d of %d", len(page.Items), page.Total)
	}
}

func TestCreateSaleDecodesEcho(t *testing.T) {
	var got entity.NewSale
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "Success",
			"data":   []map[string]any{{"id": "s-1", "invoice_no": "INV-0001", "total": "900"}},
		})
	})

	sale, err := NewSaleRepository(c).Create(context.Background(), &entity.NewSale{
		PaymentMethod: "cash",
		Total:         decimal.NewFromInt(900),
		Lines:         []entity.TransactionLine{{ProductID: "p", BatchID: "b", Quantity: 10, UnitPrice: decimal.NewFromInt(90)}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sale.InvoiceNo != "INV-0001" || !sale.Total.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("unexpected sale %+v", sale)
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 10 {
		t.Fatalf("body not forwarded: %+v", got)
	}
}

func TestBusinessReportKeepsResolvedBounds(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startDate") != "2024-02-01" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "Success",
			"data":   map[string]any{"sales_total": "1000", "cost_of_goods_sold": "600", "expense_total": "100"},
		})
	})

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rng := period.NewRange(period.LastMonth, now)
	report, err := NewReportRepository(c).Business(context.Background(), rng)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !report.Start.Equal(rng.Start) || !report.End.Equal(rng.End) {
		t.Fatalf("bounds not kept: %v..%v", report.Start, report.End)
	}
	if !report.NetProfit().Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected net profit 300, got %s", report.NetProfit())
	}
}
