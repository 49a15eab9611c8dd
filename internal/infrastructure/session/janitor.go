package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is implemented by stores that do not expire entries on their own.
type Purger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StartJanitor purges expired entries of store every interval until ctx is done.
// Stores that are not a Purger (redis) are left alone; it reports whether a
// janitor was started.
func StartJanitor(ctx context.Context, name string, store any, every time.Duration, logger *zap.Logger) bool {
	p, ok := store.(Purger)
	if !ok || every <= 0 {
		return false
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				n, err := p.DeleteExpired(ctx, now)
				if err != nil {
					logger.Warn("purge failed", zap.String("store", name), zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Debug("purged expired entries", zap.String("store", name), zap.Int64("count", n))
				}
			}
		}
	}()
	return true
}
