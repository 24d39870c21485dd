// Package telemetry defines the metrics side channel for the dispatch
// client. Telemetry is best-effort: the client wraps every emission in its
// own error boundary, so a Sink can fail on every call without affecting
// dispatch outcomes.
package telemetry

import (
	"context"
	"log/slog"
	"time"
)

// Unit describes what a metric value measures.
type Unit string

// Units used by the dispatch client.
const (
	UnitCount        Unit = "count"
	UnitMilliseconds Unit = "ms"
	UnitSeconds      Unit = "s"
)

// Metric is one data point.
type Metric struct {
	// Name identifies the metric, e.g. "task.success" or "task.duration".
	Name string

	// Value is the measurement.
	Value float64

	// Unit describes the measurement.
	Unit Unit

	// Dimensions qualify the data point, e.g. {"action": "send_message"}.
	Dimensions map[string]string

	// Timestamp is when the metric was emitted, not when the measured
	// event happened.
	Timestamp time.Time
}

// Sink ingests metrics. Implementations must be safe for concurrent use.
// A returned error is logged by the caller and otherwise ignored.
type Sink interface {
	Put(ctx context.Context, namespace string, metrics []Metric) error
}

// ──────────────────────────────────────────────────
// Nop
// ──────────────────────────────────────────────────

// Nop is a Sink that discards all metrics. It is the client default so a
// client without telemetry configured stays fully functional.
type Nop struct{}

// Put discards the metrics.
func (Nop) Put(_ context.Context, _ string, _ []Metric) error { return nil }

// ──────────────────────────────────────────────────
// Log
// ──────────────────────────────────────────────────

// Log is a Sink that writes each metric as a structured log line. Useful
// for local development and for environments without a metrics backend.
type Log struct {
	Logger *slog.Logger
}

// NewLog creates a logging sink. A nil logger falls back to slog.Default.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{Logger: logger}
}

// Put logs each metric at debug level.
func (l *Log) Put(_ context.Context, namespace string, metrics []Metric) error {
	for _, m := range metrics {
		attrs := []any{
			slog.String("namespace", namespace),
			slog.String("metric", m.Name),
			slog.Float64("value", m.Value),
			slog.String("unit", string(m.Unit)),
		}
		for k, v := range m.Dimensions {
			attrs = append(attrs, slog.String(k, v))
		}
		l.Logger.Debug("metric", attrs...)
	}
	return nil
}
