package listing

import "sync/atomic"

// Busy aggregates in-flight requests across controllers, e.g. for one global spinner.
// The zero value is ready to use; a nil *Busy ignores all calls.
type Busy struct {
	n atomic.Int64
}

// Acquire marks one request in flight and returns its release func.
func (b *Busy) Acquire() (release func()) {
	if b == nil {
		return func() {}
	}
	b.n.Add(1)
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			b.n.Add(-1)
		}
	}
}

// Active reports whether any request is in flight.
func (b *Busy) Active() bool {
	return b.Count() > 0
}

// Count returns the number of requests in flight.
func (b *Busy) Count() int64 {
	if b == nil {
		return 0
	}
	return b.n.Load()
}
