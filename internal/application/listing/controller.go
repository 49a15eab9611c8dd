// Package listing drives paginated, searchable, date-filtered list pages.
package listing

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"go.uber.org/zap"
)

// Fetcher loads one page for the given query and date range.
type Fetcher[T any] func(ctx context.Context, q pagination.ListQuery, r period.Range) (*pagination.PageResult[T], error)

// Snapshot is the committed view of a list page.
type Snapshot[T any] struct {
	Items      []T                    `json:"items"`
	Total      int64                  `json:"total"`
	Query      pagination.ListQuery   `json:"query"`
	Range      period.Range           `json:"range"`
	Pagination *pagination.Pagination `json:"pagination"`
	Loading    bool                   `json:"loading"`
	Err        error                  `json:"-"`
}

// Options configures a Controller.
type Options struct {
	// Name labels log lines and notifications, e.g. "sales".
	Name string
	// ResetOnError clears items and total when a fetch fails. By default the
	// previous page stays visible.
	ResetOnError bool
	// Notifier receives failure notifications. When nil the notifier carried by
	// the request context is used.
	Notifier notify.Notifier
	Busy     *Busy
	Logger   *zap.Logger
	// Range is the initial date filter. A zero range sends no dates.
	Range period.Range
	Query pagination.ListQuery
}

// Controller owns the query state of one list page and commits only the response
// to the most recently issued request.
type Controller[T any] struct {
	fetch Fetcher[T]
	opts  Options

	mu       sync.Mutex
	query    pagination.ListQuery
	rng      period.Range
	issued   uint64
	inflight int
	items    []T
	total    int64
	err      error
}

// New creates a controller. Nothing is fetched until the first Set* or Refresh.
func New[T any](fetch func(ctx context.Context, q pagination.ListQuery, r period.Range) (*pagination.PageResult[T], error), opts Options) *Controller[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	q := opts.Query
	if q == (pagination.ListQuery{}) {
		q = pagination.DefaultQuery()
	}
	return &Controller[T]{
		fetch: fetch,
		opts:  opts,
		query: q.Normalize(),
		rng:   opts.Range,
		items: []T{},
	}
}

// SetPage moves to page and fetches it.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	c.query.Page = max(page, 1)
	c.mu.Unlock()
	return c.load(ctx)
}

// SetLimit changes the page size and returns to the first page.
func (c *Controller[T]) SetLimit(ctx context.Context, limit int) error {
	c.mu.Lock()
	c.query.Limit = limit
	c.query.Page = 1
	c.query = c.query.Normalize()
	c.mu.Unlock()
	return c.load(ctx)
}

// SetSearch changes the keyword and returns to the first page.
func (c *Controller[T]) SetSearch(ctx context.Context, search string) error {
	c.mu.Lock()
	c.query.Search = search
	c.query.Page = 1
	c.mu.Unlock()
	return c.load(ctx)
}

// SetRange changes the date filter and returns to the first page.
func (c *Controller[T]) SetRange(ctx context.Context, r period.Range) error {
	c.mu.Lock()
	c.rng = r
	c.query.Page = 1
	c.mu.Unlock()
	return c.load(ctx)
}

// SetPeriod selects a period token. Custom keeps the current bounds.
func (c *Controller[T]) SetPeriod(ctx context.Context, token period.Token, now time.Time) error {
	c.mu.Lock()
	r := c.rng
	c.mu.Unlock()
	return c.SetRange(ctx, r.WithToken(token, now))
}

// Load replaces the whole query and range with a single fetch.
func (c *Controller[T]) Load(ctx context.Context, q pagination.ListQuery, r period.Range) error {
	c.mu.Lock()
	c.query = q.Normalize()
	c.rng = r
	c.mu.Unlock()
	return c.load(ctx)
}

// Refresh refetches the current page.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	return c.load(ctx)
}

// Loading reports whether a request of this controller is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Snapshot returns the committed state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:      items,
		Total:      c.total,
		Query:      c.query,
		Range:      c.rng,
		Pagination: pagination.NewPagination(c.query.Page, c.query.Limit, c.total),
		Loading:    c.inflight > 0,
		Err:        c.err,
	}
}

func (c *Controller[T]) load(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	q, r := c.query, c.rng
	c.inflight++
	c.mu.Unlock()

	release := c.opts.Busy.Acquire()
	defer release()
	defer func() {
		c.mu.Lock()
		c.inflight--
		c.mu.Unlock()
	}()

	res, err := c.fetch(ctx, q, r)

	c.mu.Lock()
	if seq != c.issued {
		latest := c.issued
		c.mu.Unlock()
		// A newer request was issued; its response owns the page.
		c.opts.Logger.Debug("discarding stale list response",
			zap.String("list", c.opts.Name),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", latest),
		)
		return nil
	}

	if err != nil {
		c.err = err
		if c.opts.ResetOnError {
			c.items = []T{}
			c.total = 0
		}
		c.mu.Unlock()
		c.opts.Logger.Warn("list fetch failed", zap.String("list", c.opts.Name), zap.Error(err))
		c.notifier(ctx).Notify(ctx, notify.Notification{
			Level:   notify.LevelError,
			Message: apperror.GetAppError(err).Message,
		})
		return err
	}

	if res == nil {
		res = &pagination.PageResult[T]{}
	}
	c.err = nil
	c.items = pagination.Truncate(res.Items, q.Limit)
	if c.items == nil {
		c.items = []T{}
	}
	c.total = res.Total
	c.mu.Unlock()
	return nil
}

func (c *Controller[T]) notifier(ctx context.Context) notify.Notifier {
	if c.opts.Notifier != nil {
		return c.opts.Notifier
	}
	return notify.From(ctx)
}
