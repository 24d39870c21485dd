package middleware

import (
	"context"
	"log/slog"

	"github.com/chrlshc/Huntaze-sub003/task"
)

// Logging returns middleware that logs dispatch start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, req *task.Request, next Handler) (task.Outcome, error) {
		logger.Info("dispatch started",
			slog.String("action", string(req.Action)),
			slog.String("target_id", req.TargetID),
		)

		out, err := next(ctx)

		switch {
		case err != nil:
			logger.Error("dispatch rejected",
				slog.String("action", string(req.Action)),
				slog.String("target_id", req.TargetID),
				slog.String("error", err.Error()),
			)
		case !out.Success:
			logger.Warn("dispatch failed",
				slog.String("action", string(req.Action)),
				slog.String("task_id", out.TaskID),
				slog.String("state", string(out.State)),
				slog.Duration("elapsed", out.Duration),
				slog.String("error", out.Error),
			)
		default:
			logger.Info("dispatch completed",
				slog.String("action", string(req.Action)),
				slog.String("task_id", out.TaskID),
				slog.Duration("elapsed", out.Duration),
			)
		}

		return out, err
	}
}
