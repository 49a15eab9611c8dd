package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sangkips/stockdesk/internal/application/listing"
)

const busyTick = 200 * time.Millisecond

// watchBusy prints a loading marker to w once per stretch in which b stays
// active across a tick. stop ends the watcher and waits for it.
func watchBusy(ctx context.Context, b *listing.Busy, w io.Writer, every time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(every)
		defer t.Stop()
		shown := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				active := b.Active()
				if active && !shown {
					fmt.Fprintln(w, "loading...")
				}
				shown = active
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
