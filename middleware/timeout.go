package middleware

import (
	"context"
	"time"

	"github.com/chrlshc/Huntaze-sub003/task"
)

// Timeout returns middleware that enforces an outer deadline on the whole
// dispatch call, independent of the client's poll bound. When the deadline
// is exceeded the context is cancelled and the dispatch resolves with a
// cancelled outcome.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *task.Request, next Handler) (task.Outcome, error) {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
