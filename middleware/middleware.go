// Package middleware provides composable middleware for task dispatch.
// Middleware wraps dispatch calls synchronously and can modify execution
// (recover from panics, log, record metrics, add tracing, enforce an outer
// deadline).
package middleware

import (
	"context"

	"github.com/chrlshc/Huntaze-sub003/task"
)

// Handler is the terminal function that performs the dispatch.
type Handler func(ctx context.Context) (task.Outcome, error)

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the request being dispatched, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, req *task.Request, next Handler) (task.Outcome, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, metrics) executes as:
//
//	logging → recover → metrics → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, req *task.Request, next Handler) (task.Outcome, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (task.Outcome, error) {
				return mw(ctx, req, prev)
			}
		}
		return h(ctx)
	}
}
