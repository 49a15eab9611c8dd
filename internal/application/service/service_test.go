package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/infrastructure/session"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/sangkips/stockdesk/pkg/printer"
	"go.uber.org/zap"
)

func TestDeleteExpenseTypeDeclined(t *testing.T) {
	repo := &fakeExpenses{types: []entity.ExpenseType{{ID: "t1", Name: "Rent"}}}
	svc := NewExpenseService(repo, nil, zap.NewNop())

	deleted, err := svc.DeleteType(context.Background(), "t1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatalf("declined delete reported as deleted")
	}
	if len(repo.calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", repo.calls)
	}
}

func TestDeleteExpenseTypeConfirmed(t *testing.T) {
	repo := &fakeExpenses{types: []entity.ExpenseType{{ID: "t1", Name: "Rent"}}}
	svc := NewExpenseService(repo, nil, zap.NewNop())
	collector := &notify.Collector{}
	ctx := notify.WithNotifier(context.Background(), collector)

	deleted, err := svc.DeleteType(ctx, "t1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted || len(repo.deleted) != 1 || repo.deleted[0] != "t1" {
		t.Fatalf("expected t1 deleted, got %v", repo.deleted)
	}
	if items := collector.Items(); len(items) != 1 || items[0].Level != notify.LevelSuccess {
		t.Fatalf("expected success notification, got %+v", items)
	}
}

func TestSaveExpenseType(t *testing.T) {
	repo := &fakeExpenses{types: []entity.ExpenseType{{ID: "t1", Name: "Rent"}}}
	svc := NewExpenseService(repo, nil, zap.NewNop())

	if _, err := svc.SaveType(context.Background(), &SaveExpenseTypeInput{Name: "   "}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("validation should not reach the backend, got %v", repo.calls)
	}

	types, err := svc.SaveType(context.Background(), &SaveExpenseTypeInput{Name: "Utilities"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected refreshed list of 2, got %d", len(types))
	}

	types, err = svc.SaveType(context.Background(), &SaveExpenseTypeInput{ID: "t1", Name: "Office rent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types[0].Name != "Office rent" {
		t.Fatalf("expected updated name, got %q", types[0].Name)
	}
}

func TestListExpenseTypesFilters(t *testing.T) {
	repo := &fakeExpenses{types: []entity.ExpenseType{{ID: "1", Name: "Rent"}, {ID: "2", Name: "Salary"}, {ID: "3", Name: "Current bill"}}}
	svc := NewExpenseService(repo, nil, zap.NewNop())

	types, err := svc.ListTypes(context.Background(), "REN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 matches, got %+v", types)
	}
}

func TestListExpensesPageTotal(t *testing.T) {
	repo := &fakeExpenses{page: []entity.Expense{{Amount: dec("100")}, {Amount: dec("25.75")}}}
	svc := NewExpenseService(repo, nil, zap.NewNop())

	res, err := svc.ListExpenses(context.Background(), ListInput{Query: pagination.DefaultQuery()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.PageTotal.Equal(dec("125.75")) {
		t.Fatalf("expected 125.75, got %s", res.PageTotal)
	}
}

func TestBusinessReport(t *testing.T) {
	repo := &fakeReports{report: &entity.BusinessReport{
		SalesTotal:      dec("10000"),
		SaleReturnTotal: dec("500"),
		CostOfGoodsSold: dec("6000"),
		ExpenseTotal:    dec("1200"),
		DamageTotal:     dec("300"),
	}}
	svc := NewReportService(repo, newTestPrinterService(&recordingPrinter{}), nil, zap.NewNop())
	rng := period.NewRange(period.LastMonth, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	view, err := svc.Business(context.Background(), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.NetSales.Equal(dec("9500")) || !view.GrossProfit.Equal(dec("3500")) || !view.NetProfit.Equal(dec("2000")) {
		t.Fatalf("unexpected derived figures: %+v", view)
	}
	if view.Period != period.LastMonth || view.Start.Month() != time.February {
		t.Fatalf("expected last month bounds, got %v %v", view.Period, view.Start)
	}

	job, err := svc.BusinessPrint(context.Background(), rng, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ContentType != printer.ContentTypePDF || !bytes.HasPrefix(job.Data, []byte("%PDF")) {
		t.Fatalf("expected an A4 pdf, got %q", job.ContentType)
	}
}

func TestBusinessReportEmptyIsNotFound(t *testing.T) {
	svc := NewReportService(&fakeReports{}, newTestPrinterService(&recordingPrinter{}), nil, zap.NewNop())
	_, err := svc.Business(context.Background(), period.NewRange(period.Today, time.Now()))
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReceivablesDueTotal(t *testing.T) {
	repo := &fakeReports{dues: []entity.PartyBalance{{Due: dec("40")}, {Due: dec("60.5")}}}
	svc := NewReportService(repo, newTestPrinterService(&recordingPrinter{}), nil, zap.NewNop())

	res, err := svc.Receivables(context.Background(), ListInput{Query: pagination.DefaultQuery()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.PageTotal.Equal(dec("100.5")) {
		t.Fatalf("expected due total 100.5, got %s", res.PageTotal)
	}
	if res.Range != nil {
		t.Fatalf("receivables carry no date range")
	}
}

func TestLowStockSortAndWorkbook(t *testing.T) {
	repo := &fakeProducts{lowStock: []entity.LowStockItem{
		{Name: "Beta", Code: "B", Stock: 1, AlertQuantity: 10},
		{Name: "alpha", Code: "A", Stock: 4, AlertQuantity: 5},
	}}
	svc := NewProductService(repo, nil, zap.NewNop())

	items, err := svc.LowStock(context.Background(), listing.ParseSort("name"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Name != "alpha" {
		t.Fatalf("expected case-insensitive name sort, got %q first", items[0].Name)
	}

	items, _ = svc.LowStock(context.Background(), listing.ParseSort("-shortage"))
	if items[0].Code != "B" {
		t.Fatalf("expected largest shortage first, got %q", items[0].Code)
	}

	data, err := svc.LowStockWorkbook(context.Background(), listing.ParseSort("code"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("expected a zip-based xlsx workbook")
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewProductService(&fakeProducts{}, nil, zap.NewNop())
	if _, err := svc.GetProduct(context.Background(), "nope"); !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestSessionLifecycle(t *testing.T) {
	// The memory store checks expiry against the wall clock.
	now := time.Now()
	svc := NewSessionService(session.NewMemoryStore(), 12*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := svc.Open(ctx, &OpenSessionInput{}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	sess, err := svc.Open(ctx, &OpenSessionInput{Token: "opaque-token", BusinessID: "biz-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.ExpiresAt.Equal(now.Add(12 * time.Hour)) {
		t.Fatalf("expected TTL expiry, got %v", sess.ExpiresAt)
	}

	got, err := svc.Resolve(ctx, "opaque-token")
	if err != nil || got.BusinessID != "biz-1" {
		t.Fatalf("resolve: %v %+v", err, got)
	}

	svc.Teardown(ctx, "opaque-token")
	if _, err := svc.Resolve(ctx, "opaque-token"); !errors.Is(err, apperror.ErrNoSession) {
		t.Fatalf("expected no session after teardown, got %v", err)
	}
}

func TestSessionJWTExpiry(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewSessionService(session.NewMemoryStore(), 12*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return now }

	if _, err := svc.Open(context.Background(), &OpenSessionInput{Token: signToken(t, now.Add(-time.Hour)), BusinessID: "b"}); !errors.Is(err, apperror.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}

	exp := now.Add(time.Hour)
	sess, err := svc.Open(context.Background(), &OpenSessionInput{Token: signToken(t, exp), BusinessID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("expected token expiry to bound the session, got %v", sess.ExpiresAt)
	}
}
