package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records dispatch outcomes through an OpenTelemetry meter
// exported on the default prometheus registry. The zero value is usable
// and records nothing.
type Observability struct {
	meterProvider    *metric.MeterProvider
	meter            otelmetric.Meter
	dispatchCounter  otelmetric.Int64Counter
	dispatchDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	dispatchCounter, _ := meter.Int64Counter(
		"icons.dispatched",
		otelmetric.WithDescription("Number of icon dispatch requests"),
	)

	dispatchDuration, _ := meter.Float64Histogram(
		"icons.dispatch.duration",
		otelmetric.WithDescription("Icon dispatch duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:    provider,
		meter:            meter,
		dispatchCounter:  dispatchCounter,
		dispatchDuration: dispatchDuration,
	}
}

func (o *Observability) RecordDispatch(ctx context.Context, tier string, matched bool) {
	if o == nil || o.dispatchCounter == nil {
		return
	}
	o.dispatchCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("tier", tier),
		attribute.Bool("matched", matched),
	))
}

func (o *Observability) RecordDispatchDuration(ctx context.Context, duration time.Duration, tier string) {
	if o == nil || o.dispatchDuration == nil {
		return
	}
	o.dispatchDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("tier", tier),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
