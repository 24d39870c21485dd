package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chrlshc/Huntaze-sub003/task"
)

// tracerName is the instrumentation scope name for dispatch tracing.
const tracerName = "github.com/chrlshc/Huntaze-sub003/middleware"

// Tracing returns middleware that wraps each dispatch in an OpenTelemetry
// span. If no TracerProvider is configured globally, the default noop tracer
// is used and this middleware becomes a pass-through with zero overhead.
//
// Span attributes include: browserworker.action, browserworker.target_id,
// browserworker.task_id (set after the dispatch returns), and
// browserworker.state. An unsuccessful outcome sets the span status to
// codes.Error with the outcome's error string.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, req *task.Request, next Handler) (task.Outcome, error) {
		ctx, span := tracer.Start(ctx, "browserworker.dispatch",
			trace.WithAttributes(
				attribute.String("browserworker.action", string(req.Action)),
				attribute.String("browserworker.target_id", req.TargetID),
			),
			trace.WithSpanKind(trace.SpanKindClient),
		)
		defer span.End()

		out, err := next(ctx)

		span.SetAttributes(
			attribute.String("browserworker.task_id", out.TaskID),
			attribute.String("browserworker.state", string(out.State)),
		)

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case !out.Success:
			span.SetStatus(codes.Error, out.Error)
		default:
			span.SetStatus(codes.Ok, "")
		}

		return out, err
	}
}
