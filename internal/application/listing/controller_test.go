package listing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
)

// fakeBackend serves a fixed collection of names and records every call.
type fakeBackend struct {
	mu    sync.Mutex
	names []string
	calls []pagination.ListQuery
	fail  error
}

func newFakeBackend(n int) *fakeBackend {
	names := make([]string, n)
	for i := range names {
		names[i] = "item-" + string(rune('A'+i%26))
	}
	return &fakeBackend{names: names}
}

func (f *fakeBackend) fetch(_ context.Context, q pagination.ListQuery, _ period.Range) (*pagination.PageResult[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.fail != nil {
		return nil, f.fail
	}
	var matched []string
	for _, n := range f.names {
		if q.Search == "" || strings.Contains(n, q.Search) {
			matched = append(matched, n)
		}
	}
	start := min(q.Offset(), len(matched))
	end := min(start+q.Limit, len(matched))
	return &pagination.PageResult[string]{Items: matched[start:end], Total: int64(len(matched))}, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestEachChangeIssuesOneFetch(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend(45)
	c := New(be.fetch, Options{Name: "products"})

	steps := []struct {
		name     string
		do       func() error
		wantPage int
	}{
		{"page 2", func() error { return c.SetPage(ctx, 2) }, 2},
		{"page 3", func() error { return c.SetPage(ctx, 3) }, 3},
		{"limit resets page", func() error { return c.SetLimit(ctx, 50) }, 1},
		{"page 2 again", func() error { return c.SetPage(ctx, 2) }, 2},
		{"search resets page", func() error { return c.SetSearch(ctx, "item") }, 1},
		{"page 2 of search", func() error { return c.SetPage(ctx, 2) }, 2},
		{"range resets page", func() error { return c.SetPeriod(ctx, period.ThisMonth, time.Now()) }, 1},
		{"refresh", func() error { return c.Refresh(ctx) }, 1},
	}
	for i, st := range steps {
		if err := st.do(); err != nil {
			t.Fatalf("%s: %v", st.name, err)
		}
		if got := be.callCount(); got != i+1 {
			t.Fatalf("%s: expected %d fetches, got %d", st.name, i+1, got)
		}
		if got := c.Snapshot().Query.Page; got != st.wantPage {
			t.Fatalf("%s: expected page %d, got %d", st.name, st.wantPage, got)
		}
	}
}

func TestPaginationScenario(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeBackend(45).fetch, Options{})

	if err := c.SetPage(ctx, 2); err != nil {
		t.Fatalf("set page: %v", err)
	}
	snap := c.Snapshot()
	if snap.Pagination.TotalPages != 3 || !snap.Pagination.HasNext || !snap.Pagination.HasPrev {
		t.Fatalf("unexpected pagination on page 2: %+v", snap.Pagination)
	}
	if len(snap.Items) != 20 {
		t.Fatalf("expected 20 items, got %d", len(snap.Items))
	}

	if err := c.SetPage(ctx, 3); err != nil {
		t.Fatalf("set page: %v", err)
	}
	snap = c.Snapshot()
	if snap.Pagination.HasNext {
		t.Fatalf("next must be disabled on the last page")
	}
	if len(snap.Items) != 5 {
		t.Fatalf("expected 5 items on page 3, got %d", len(snap.Items))
	}
}

func TestIdenticalQueriesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	c := New(newFakeBackend(30).fetch, Options{})

	_ = c.SetPage(ctx, 2)
	first := c.Snapshot()
	_ = c.Refresh(ctx)
	second := c.Snapshot()

	if first.Total != second.Total || strings.Join(first.Items, ",") != strings.Join(second.Items, ",") {
		t.Fatalf("refresh changed the page: %v vs %v", first.Items, second.Items)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	fetch := func(_ context.Context, q pagination.ListQuery, _ period.Range) (*pagination.PageResult[string], error) {
		if q.Search == "slow" {
			close(slowStarted)
			<-releaseSlow
			return &pagination.PageResult[string]{Items: []string{"stale"}, Total: 1}, nil
		}
		return &pagination.PageResult[string]{Items: []string{"fresh"}, Total: 1}, nil
	}
	c := New(fetch, Options{})

	done := make(chan error, 1)
	go func() { done <- c.SetSearch(ctx, "slow") }()
	<-slowStarted

	if !c.Loading() {
		t.Fatalf("expected loading while the first request is in flight")
	}
	if err := c.SetSearch(ctx, "fast"); err != nil {
		t.Fatalf("fast search: %v", err)
	}
	close(releaseSlow)
	if err := <-done; err != nil {
		t.Fatalf("slow search: %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0] != "fresh" {
		t.Fatalf("stale response committed: %v", snap.Items)
	}
	if c.Loading() {
		t.Fatalf("loading flag not released")
	}
}

func TestFailureKeepsItemsAndNotifies(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend(10)
	collector := &notify.Collector{}
	c := New(be.fetch, Options{Notifier: collector})

	_ = c.Refresh(ctx)
	be.fail = apperror.NewAPIError("Server busy")

	err := c.SetPage(ctx, 2)
	if !apperror.IsAPI(err) {
		t.Fatalf("expected api error, got %v", err)
	}
	snap := c.Snapshot()
	if len(snap.Items) != 10 || snap.Total != 10 {
		t.Fatalf("previous items must be kept, got %d/%d", len(snap.Items), snap.Total)
	}
	if !errors.Is(snap.Err, err) {
		t.Fatalf("snapshot error not recorded")
	}
	items := collector.Items()
	if len(items) != 1 || items[0].Level != notify.LevelError || items[0].Message != "Server busy" {
		t.Fatalf("unexpected notifications %+v", items)
	}
	if c.Loading() {
		t.Fatalf("loading flag not released after failure")
	}
}

func TestResetOnError(t *testing.T) {
	ctx := context.Background()
	be := newFakeBackend(10)
	c := New(be.fetch, Options{ResetOnError: true})

	_ = c.Refresh(ctx)
	be.fail = apperror.NewNetworkError(errors.New("connection refused"))
	_ = c.Refresh(ctx)

	snap := c.Snapshot()
	if len(snap.Items) != 0 || snap.Total != 0 {
		t.Fatalf("expected reset page, got %d/%d", len(snap.Items), snap.Total)
	}
}

func TestNotifierFromContext(t *testing.T) {
	be := newFakeBackend(1)
	be.fail = errors.New("boom")
	collector := &notify.Collector{}
	ctx := notify.WithNotifier(context.Background(), collector)

	_ = New(be.fetch, Options{}).Refresh(ctx)
	if len(collector.Items()) != 1 {
		t.Fatalf("expected notification through context, got %v", collector.Items())
	}
}

func TestBusyAggregatesControllers(t *testing.T) {
	busy := &Busy{}
	block := make(chan struct{})
	started := make(chan struct{}, 2)
	fetch := func(context.Context, pagination.ListQuery, period.Range) (*pagination.PageResult[int], error) {
		started <- struct{}{}
		<-block
		return &pagination.PageResult[int]{}, nil
	}

	a := New(fetch, Options{Busy: busy})
	b := New(fetch, Options{Busy: busy})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _ = a.Refresh(context.Background()) }()
	go func() { defer wg.Done(); _ = b.Refresh(context.Background()) }()
	<-started
	<-started

	if busy.Count() != 2 {
		t.Fatalf("expected 2 in flight, got %d", busy.Count())
	}
	close(block)
	wg.Wait()
	if busy.Active() {
		t.Fatalf("busy not released")
	}
}
