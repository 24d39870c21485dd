package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/chrlshc/Huntaze-sub003/task"
)

// Recover returns middleware that recovers from panics in the handler chain.
// Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, req *task.Request, next Handler) (out task.Outcome, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("dispatch panicked",
					slog.String("action", string(req.Action)),
					slog.String("target_id", req.TargetID),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic dispatching %s: %v", req.Action, r)
			}
		}()
		return next(ctx)
	}
}
