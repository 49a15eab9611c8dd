// Package notify carries transient user-facing messages (toasts) from the data flow to
// whichever surface presents them.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one transient message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})

// Collector buffers notifications so they can be returned with a response.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func (c *Collector) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// Items returns a copy of the buffered notifications.
func (c *Collector) Items() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Writer prints notifications as "[level] message" lines.
type Writer struct {
	mu sync.Mutex
	W  io.Writer
}

func (w *Writer) Notify(_ context.Context, n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.W, "[%s] %s\n", n.Level, n.Message)
}

func Warn(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

func Error(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

func Success(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

type ctxKey struct{}

// WithNotifier attaches n to ctx so request-scoped collectors reach deeper layers.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// From returns the notifier attached to ctx, or Discard.
func From(ctx context.Context) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok {
		return n
	}
	return Discard
}
