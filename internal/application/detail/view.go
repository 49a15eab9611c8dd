// Package detail loads a single record for display or printing.
package detail

import (
	"context"
	"errors"
	"sync"

	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/sangkips/stockdesk/pkg/printer"
	"go.uber.org/zap"
)

// Status is the lifecycle of a detail view.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	// ErrNotLoaded is the placeholder of a view that has no record yet.
	ErrNotLoaded = errors.New("detail: nothing loaded")
	// ErrLoading is the placeholder of a view whose record is still loading.
	ErrLoading = errors.New("detail: loading")
)

// Loader fetches the record with id.
type Loader[T any] func(ctx context.Context, id string) (*T, error)

// Options configures a View.
type Options struct {
	Name     string
	Notifier notify.Notifier
	// Busy counts the fetch as in flight while it runs.
	Busy   *listing.Busy
	Logger *zap.Logger
}

// View holds one record keyed by id. It fetches once per id change and only
// exposes a record that loaded completely.
type View[T any] struct {
	load Loader[T]
	opts Options

	mu     sync.Mutex
	id     string
	seq    uint64
	status Status
	record *T
	err    error
}

// New creates an idle view.
func New[T any](load func(ctx context.Context, id string) (*T, error), opts Options) *View[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &View[T]{load: load, opts: opts}
}

// Load fetches id unless it is already loaded or loading. A failed id is
// fetched again.
func (v *View[T]) Load(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewFieldError("id", "id is required")
	}

	v.mu.Lock()
	if v.id == id && (v.status == Loaded || v.status == Loading) {
		v.mu.Unlock()
		return nil
	}
	v.seq++
	seq := v.seq
	v.id = id
	v.status = Loading
	v.record = nil
	v.err = nil
	v.mu.Unlock()

	release := v.opts.Busy.Acquire()
	rec, err := v.load(ctx, id)
	release()
	if err == nil && rec == nil {
		err = apperror.NewNotFoundError(v.resource())
	}

	v.mu.Lock()
	if seq != v.seq {
		// The id changed while this request was in flight.
		v.mu.Unlock()
		return nil
	}
	if err != nil {
		v.status = Failed
		v.err = err
		v.mu.Unlock()
		v.opts.Logger.Warn("detail fetch failed", zap.String("view", v.opts.Name), zap.String("id", id), zap.Error(err))
		n := v.opts.Notifier
		if n == nil {
			n = notify.From(ctx)
		}
		n.Notify(ctx, notify.Notification{Level: notify.LevelError, Message: apperror.GetAppError(err).Message})
		return err
	}
	v.status = Loaded
	v.record = rec
	v.mu.Unlock()
	return nil
}

// Status returns the current status and id.
func (v *View[T]) Status() (Status, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status, v.id
}

// Render returns the loaded record. Any other state yields a placeholder error:
// ErrNotLoaded, ErrLoading, or the fetch error.
func (v *View[T]) Render() (*T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.status {
	case Loaded:
		return v.record, nil
	case Loading:
		return nil, ErrLoading
	case Failed:
		return nil, v.err
	default:
		return nil, ErrNotLoaded
	}
}

// Print composes the loaded record into a sheet and renders it for layout.
func Print[T any](v *View[T], layout printer.Layout, compose func(*T) *printer.Sheet) (printer.Job, error) {
	rec, err := v.Render()
	if err != nil {
		return printer.Job{}, err
	}
	return printer.Render(layout, compose(rec))
}

func (v *View[T]) resource() string {
	if v.opts.Name == "" {
		return "record"
	}
	return v.opts.Name
}
