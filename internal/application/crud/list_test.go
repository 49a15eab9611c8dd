package crud

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
)

type expenseType struct {
	ID   string
	Name string
}

type fakeStore struct {
	rows   []expenseType
	calls  map[string]int
	failOn string
}

func (s *fakeStore) backend() Backend[expenseType] {
	return Backend[expenseType]{
		List: func(context.Context) ([]expenseType, error) {
			s.calls["list"]++
			return append([]expenseType(nil), s.rows...), nil
		},
		Create: func(_ context.Context, it expenseType) error {
			s.calls["create"]++
			if s.failOn == "create" {
				return apperror.NewAPIError("Duplicate name")
			}
			it.ID = strconv.Itoa(len(s.rows) + 1)
			s.rows = append(s.rows, it)
			return nil
		},
		Update: func(_ context.Context, id string, it expenseType) error {
			s.calls["update"]++
			for i := range s.rows {
				if s.rows[i].ID == id {
					s.rows[i].Name = it.Name
				}
			}
			return nil
		},
		Delete: func(_ context.Context, id string) error {
			s.calls["delete"]++
			for i := range s.rows {
				if s.rows[i].ID == id {
					s.rows = append(s.rows[:i], s.rows[i+1:]...)
					break
				}
			}
			return nil
		},
	}
}

func newList(t *testing.T) (*List[expenseType], *fakeStore, *notify.Collector) {
	t.Helper()
	store := &fakeStore{
		rows:  []expenseType{{"1", "Rent"}, {"2", "Salary"}, {"3", "Electricity"}},
		calls: map[string]int{},
	}
	collector := &notify.Collector{}
	l := New(store.backend(), Options[expenseType]{
		Name: "Expense type",
		Key:  func(e expenseType) string { return e.Name },
		Validate: func(e expenseType) []apperror.FieldError {
			if e.Name == "" {
				return []apperror.FieldError{{Field: "name", Message: "Name is required"}}
			}
			return nil
		},
		Notifier: collector,
	})
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return l, store, collector
}

func TestSaveCreatesOrUpdates(t *testing.T) {
	ctx := context.Background()
	l, store, _ := newList(t)

	if err := l.Save(ctx, expenseType{Name: "Transport"}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := l.Save(ctx, expenseType{Name: "Office rent"}, "1"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.calls["create"] != 1 || store.calls["update"] != 1 {
		t.Fatalf("unexpected calls %v", store.calls)
	}
	// initial load plus one refetch per write
	if store.calls["list"] != 3 {
		t.Fatalf("expected 3 list calls, got %d", store.calls["list"])
	}
	items := l.Items()
	if len(items) != 4 || items[0].Name != "Office rent" {
		t.Fatalf("list not refetched: %+v", items)
	}
}

func TestSaveValidatesBeforeCalling(t *testing.T) {
	l, store, _ := newList(t)
	err := l.Save(context.Background(), expenseType{}, "")
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.calls["create"] != 0 {
		t.Fatalf("backend called despite missing fields")
	}
}

func TestSaveFailureNotifies(t *testing.T) {
	l, store, collector := newList(t)
	store.failOn = "create"
	if err := l.Save(context.Background(), expenseType{Name: "Rent"}, ""); !apperror.IsAPI(err) {
		t.Fatalf("expected api error, got %v", err)
	}
	items := collector.Items()
	if len(items) != 1 || items[0].Message != "Duplicate name" {
		t.Fatalf("unexpected notifications %+v", items)
	}
}

func TestDeclinedDeleteMakesNoCall(t *testing.T) {
	l, store, _ := newList(t)
	before := l.Items()

	c := l.RequestDelete("2")
	c.Decline()

	if store.calls["delete"] != 0 || store.calls["list"] != 1 {
		t.Fatalf("declined delete reached the backend: %v", store.calls)
	}
	if len(l.Items()) != len(before) {
		t.Fatalf("list changed after decline")
	}
	if err := c.Confirm(context.Background()); !errors.Is(err, ErrConfirmationExpired) {
		t.Fatalf("expected expired confirmation, got %v", err)
	}
}

func TestConfirmedDeleteRefetches(t *testing.T) {
	l, store, _ := newList(t)
	c := l.RequestDelete("2")
	if c.ID() != "2" {
		t.Fatalf("unexpected id %s", c.ID())
	}
	if err := c.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if store.calls["delete"] != 1 || len(l.Items()) != 2 {
		t.Fatalf("delete not applied: %v / %+v", store.calls, l.Items())
	}
}

func TestNewerRequestSupersedesPending(t *testing.T) {
	l, store, _ := newList(t)
	first := l.RequestDelete("1")
	second := l.RequestDelete("3")

	if err := first.Confirm(context.Background()); !errors.Is(err, ErrConfirmationExpired) {
		t.Fatalf("expected superseded confirmation, got %v", err)
	}
	if err := second.Confirm(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if store.calls["delete"] != 1 {
		t.Fatalf("expected exactly one delete, got %d", store.calls["delete"])
	}
}

func TestFilterIsClientSide(t *testing.T) {
	l, store, _ := newList(t)
	got := l.Filter("  eLEc ")
	if len(got) != 1 || got[0].Name != "Electricity" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if len(l.Filter("")) != 3 {
		t.Fatalf("empty filter must return everything")
	}
	if store.calls["list"] != 1 {
		t.Fatalf("filter called the backend")
	}
}

func TestBackendCallsTrackBusy(t *testing.T) {
	ctx := context.Background()
	busy := &listing.Busy{}
	store := &fakeStore{rows: []expenseType{{"1", "Rent"}}, calls: map[string]int{}}
	inner := store.backend()
	seen := map[string]int64{}
	track := func(op string) { seen[op] = busy.Count() }

	l := New(Backend[expenseType]{
		List: func(ctx context.Context) ([]expenseType, error) {
			track("list")
			return inner.List(ctx)
		},
		Create: func(ctx context.Context, it expenseType) error {
			track("create")
			return inner.Create(ctx, it)
		},
		Update: inner.Update,
		Delete: func(ctx context.Context, id string) error {
			track("delete")
			return inner.Delete(ctx, id)
		},
	}, Options[expenseType]{Name: "Expense type", Busy: busy, Notifier: notify.Discard})

	if err := l.Save(ctx, expenseType{Name: "Fuel"}, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := l.RequestDelete("1").Confirm(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	store.failOn = "create"
	if err := l.Save(ctx, expenseType{Name: "Fuel"}, ""); err == nil {
		t.Fatalf("expected create failure")
	}

	for _, op := range []string{"list", "create", "delete"} {
		if seen[op] != 1 {
			t.Fatalf("%s: expected one call in flight, got %d", op, seen[op])
		}
	}
	if busy.Active() {
		t.Fatalf("expected busy released, got %d", busy.Count())
	}
}
