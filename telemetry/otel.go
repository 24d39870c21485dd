package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for browser-worker metrics.
const meterName = "github.com/chrlshc/Huntaze-sub003/telemetry"

// OTel is a Sink that forwards metrics to OpenTelemetry instruments.
// Count-unit metrics become counters; everything else becomes a histogram.
// Instruments are created lazily per metric name and cached.
//
// If no MeterProvider is configured globally, the OTel API hands back noop
// instruments and the sink becomes a pass-through.
type OTel struct {
	meter metric.Meter

	mu         sync.Mutex
	counters   map[string]metric.Float64Counter
	histograms map[string]metric.Float64Histogram
}

// NewOTel creates a sink using the global OTel MeterProvider.
func NewOTel() *OTel {
	return NewOTelWithMeter(otel.Meter(meterName))
}

// NewOTelWithMeter creates a sink using the provided meter. This variant
// allows injecting a specific MeterProvider for testing.
func NewOTelWithMeter(meter metric.Meter) *OTel {
	return &OTel{
		meter:      meter,
		counters:   make(map[string]metric.Float64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// Put records each metric on its instrument. The namespace becomes the
// instrument name prefix: "<namespace>.<metric name>".
func (o *OTel) Put(ctx context.Context, namespace string, metrics []Metric) error {
	for _, m := range metrics {
		name := namespace + "." + m.Name

		attrs := make([]attribute.KeyValue, 0, len(m.Dimensions))
		for k, v := range m.Dimensions {
			attrs = append(attrs, attribute.String(k, v))
		}
		opt := metric.WithAttributes(attrs...)

		if m.Unit == UnitCount {
			c, err := o.counter(name)
			if err != nil {
				return err
			}
			c.Add(ctx, m.Value, opt)
			continue
		}

		h, err := o.histogram(name, m.Unit)
		if err != nil {
			return err
		}
		h.Record(ctx, m.Value, opt)
	}
	return nil
}

func (o *OTel) counter(name string) (metric.Float64Counter, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if c, ok := o.counters[name]; ok {
		return c, nil
	}
	c, err := o.meter.Float64Counter(name, metric.WithUnit("{count}"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create counter %q: %w", name, err)
	}
	o.counters[name] = c
	return c, nil
}

func (o *OTel) histogram(name string, unit Unit) (metric.Float64Histogram, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if h, ok := o.histograms[name]; ok {
		return h, nil
	}
	h, err := o.meter.Float64Histogram(name, metric.WithUnit(string(unit)))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create histogram %q: %w", name, err)
	}
	o.histograms[name] = h
	return h, nil
}
