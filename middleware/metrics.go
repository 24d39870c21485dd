package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/chrlshc/Huntaze-sub003/task"
)

// meterName is the instrumentation scope name for dispatch metrics.
const meterName = "github.com/chrlshc/Huntaze-sub003/middleware"

// Metrics returns middleware that records per-dispatch metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - browserworker.dispatch.duration (Float64Histogram): dispatch time in
//     seconds, with attributes: action, state
//   - browserworker.dispatch.total (Int64Counter): total dispatches,
//     with attributes: action, state
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"browserworker.dispatch.duration",
		metric.WithDescription("Duration of task dispatch in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	total, tErr := meter.Int64Counter(
		"browserworker.dispatch.total",
		metric.WithDescription("Total number of task dispatches"),
		metric.WithUnit("{dispatch}"),
	)
	_ = tErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, req *task.Request, next Handler) (task.Outcome, error) {
		start := time.Now()
		out, err := next(ctx)
		elapsed := time.Since(start).Seconds()

		state := string(out.State)
		if err != nil {
			state = "rejected"
		}

		attrs := metric.WithAttributes(
			attribute.String("action", string(req.Action)),
			attribute.String("state", state),
		)

		duration.Record(ctx, elapsed, attrs)
		total.Add(ctx, 1, attrs)

		return out, err
	}
}
