package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter           metric.Meter
	queueDepthGauge metric.Int64ObservableGauge
	outcomeGauge    metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"webhook-courier",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// Meter exposes the meter so callers can register their own counters
func (oe *OTelExporter) Meter() metric.Meter {
	return oe.meter
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Queue depth gauge (per queue state)
	oe.queueDepthGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.queue.depth",
		metric.WithDescription("Number of delivery jobs per queue state"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(oe.observeQueueDepths),
	)
	if err != nil {
		return fmt.Errorf("creating queue depth gauge: %w", err)
	}

	// Outcome gauge (attempt rows per outcome)
	oe.outcomeGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.attempts.count",
		metric.WithDescription("Number of recorded delivery attempts by outcome"),
		metric.WithUnit("{attempts}"),
		metric.WithInt64Callback(oe.observeOutcomes),
	)
	if err != nil {
		return fmt.Errorf("creating outcome gauge: %w", err)
	}

	return nil
}

// observeQueueDepths is a callback that reports queue depths
func (oe *OTelExporter) observeQueueDepths(ctx context.Context, observer metric.Int64Observer) error {
	depths, err := oe.collector.GetQueueDepths(ctx)
	if err != nil {
		return err
	}

	observer.Observe(depths.Ready, metric.WithAttributes(
		attribute.String("queue.state", "ready"),
	))
	observer.Observe(depths.Delayed, metric.WithAttributes(
		attribute.String("queue.state", "delayed"),
	))
	observer.Observe(depths.Processing, metric.WithAttributes(
		attribute.String("queue.state", "processing"),
	))

	return nil
}

// observeOutcomes is a callback that reports attempt counts by outcome
func (oe *OTelExporter) observeOutcomes(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetOutcomeCounts(ctx)
	if err != nil {
		return err
	}

	for outcome, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("attempt.outcome", outcome),
		))
	}

	return nil
}

// ServeHTTP returns the HTTP handler that serves Prometheus-formatted metrics
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
