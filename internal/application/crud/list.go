// Package crud manages small editable lists (expense types and the like) with
// one save for create/update and confirmed deletes.
package crud

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"go.uber.org/zap"
)

// ErrConfirmationExpired is returned when a confirmation was declined, already
// used, or replaced by a newer delete request.
var ErrConfirmationExpired = errors.New("crud: delete confirmation is no longer pending")

// Backend is the set of calls a list needs.
type Backend[T any] struct {
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, item T) error
	Update func(ctx context.Context, id string, item T) error
	Delete func(ctx context.Context, id string) error
}

// Options configures a List.
type Options[T any] struct {
	// Name is the singular label used in notifications, e.g. "Expense type".
	Name string
	// Key returns the field matched by Filter.
	Key func(T) string
	// Validate returns the missing required fields of item.
	Validate func(item T) []apperror.FieldError
	Notifier notify.Notifier
	Busy     *listing.Busy
	Logger   *zap.Logger
}

// List is a client-side cache of a small collection.
type List[T any] struct {
	be   Backend[T]
	opts Options[T]

	mu      sync.Mutex
	items   []T
	pending uint64
	nextID  uint64
}

// New creates an empty list; call Refresh to load it.
func New[T any](be Backend[T], opts Options[T]) *List[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Name == "" {
		opts.Name = "Item"
	}
	return &List[T]{be: be, opts: opts, items: []T{}}
}

// Refresh reloads the list from the backend.
func (l *List[T]) Refresh(ctx context.Context) error {
	release := l.opts.Busy.Acquire()
	items, err := l.be.List(ctx)
	release()
	if err != nil {
		l.fail(ctx, "refresh", err)
		return err
	}
	if items == nil {
		items = []T{}
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Items returns the loaded collection.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Filter narrows the loaded collection to items whose key contains q, ignoring
// case. It never calls the backend.
func (l *List[T]) Filter(q string) []T {
	items := l.Items()
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" || l.opts.Key == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(l.opts.Key(it)), q) {
			out = append(out, it)
		}
	}
	return out
}

// Save creates item, or updates it when editID is set. Required fields are
// checked before any call; a successful write refetches the list.
func (l *List[T]) Save(ctx context.Context, item T, editID string) error {
	if l.opts.Validate != nil {
		if errs := l.opts.Validate(item); len(errs) > 0 {
			return apperror.NewValidationError(errs)
		}
	}

	var err error
	verb := "created"
	release := l.opts.Busy.Acquire()
	if editID != "" {
		verb = "updated"
		err = l.be.Update(ctx, editID, item)
	} else {
		err = l.be.Create(ctx, item)
	}
	release()
	if err != nil {
		l.fail(ctx, "save", err)
		return err
	}

	notify.Success(ctx, l.notifier(ctx), "%s %s", l.opts.Name, verb)
	return l.Refresh(ctx)
}

// Confirmation is a pending delete awaiting the user's answer.
type Confirmation[T any] struct {
	list  *List[T]
	id    string
	token uint64
}

// ID is the record the confirmation would delete.
func (c *Confirmation[T]) ID() string { return c.id }

// RequestDelete asks for confirmation before deleting id. Nothing is sent yet.
func (l *List[T]) RequestDelete(id string) *Confirmation[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.pending = l.nextID
	return &Confirmation[T]{list: l, id: id, token: l.pending}
}

// Confirm deletes the record and refetches the list.
func (c *Confirmation[T]) Confirm(ctx context.Context) error {
	if !c.take() {
		return ErrConfirmationExpired
	}
	l := c.list
	release := l.opts.Busy.Acquire()
	err := l.be.Delete(ctx, c.id)
	release()
	if err != nil {
		l.fail(ctx, "delete", err)
		return err
	}
	notify.Success(ctx, l.notifier(ctx), "%s deleted", l.opts.Name)
	return l.Refresh(ctx)
}

// Decline drops the request without calling the backend.
func (c *Confirmation[T]) Decline() {
	c.take()
}

func (c *Confirmation[T]) take() bool {
	l := c.list
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending != c.token {
		return false
	}
	l.pending = 0
	return true
}

func (l *List[T]) fail(ctx context.Context, op string, err error) {
	l.opts.Logger.Warn("crud operation failed", zap.String("list", l.opts.Name), zap.String("op", op), zap.Error(err))
	notify.Error(ctx, l.notifier(ctx), "%s", apperror.GetAppError(err).Message)
}

func (l *List[T]) notifier(ctx context.Context) notify.Notifier {
	if l.opts.Notifier != nil {
		return l.opts.Notifier
	}
	return notify.From(ctx)
}
