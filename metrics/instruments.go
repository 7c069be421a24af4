package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

/* Instruments bundles the counters incremented on the hot path.
 * All methods are nil-receiver safe so components can run without
 * telemetry wired (tests, the CLI).
 */
type Instruments struct {
	ingestAccepted metric.Int64Counter
	deliveries     metric.Int64Counter
	cacheHits      metric.Int64Counter
	cacheMisses    metric.Int64Counter
	cacheErrors    metric.Int64Counter
	logsPurged     metric.Int64Counter
}

// NewInstruments registers the counter instruments on the given meter
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	ingestAccepted, err := meter.Int64Counter(
		"webhook.ingest.accepted",
		metric.WithDescription("Webhooks accepted for delivery"),
		metric.WithUnit("{webhooks}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ingest counter: %w", err)
	}

	deliveries, err := meter.Int64Counter(
		"webhook.delivery.attempts",
		metric.WithDescription("Executed delivery attempts by outcome"),
		metric.WithUnit("{attempts}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating delivery counter: %w", err)
	}

	cacheHits, err := meter.Int64Counter(
		"webhook.cache.hits",
		metric.WithDescription("Subscription cache hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache hit counter: %w", err)
	}

	cacheMisses, err := meter.Int64Counter(
		"webhook.cache.misses",
		metric.WithDescription("Subscription cache misses"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache miss counter: %w", err)
	}

	cacheErrors, err := meter.Int64Counter(
		"webhook.cache.errors",
		metric.WithDescription("Swallowed subscription cache failures"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache error counter: %w", err)
	}

	logsPurged, err := meter.Int64Counter(
		"webhook.retention.purged",
		metric.WithDescription("Delivery log rows deleted by the retention sweep"),
		metric.WithUnit("{rows}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating retention counter: %w", err)
	}

	return &Instruments{
		ingestAccepted: ingestAccepted,
		deliveries:     deliveries,
		cacheHits:      cacheHits,
		cacheMisses:    cacheMisses,
		cacheErrors:    cacheErrors,
		logsPurged:     logsPurged,
	}, nil
}

// IngestAccepted records one accepted ingest request
func (i *Instruments) IngestAccepted(ctx context.Context) {
	if i == nil {
		return
	}
	i.ingestAccepted.Add(ctx, 1)
}

// Delivery records one executed attempt with its outcome
func (i *Instruments) Delivery(ctx context.Context, outcome string) {
	if i == nil {
		return
	}
	i.deliveries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("attempt.outcome", outcome),
	))
}

// CacheHit records a cache hit
func (i *Instruments) CacheHit(ctx context.Context) {
	if i == nil {
		return
	}
	i.cacheHits.Add(ctx, 1)
}

// CacheMiss records a cache miss
func (i *Instruments) CacheMiss(ctx context.Context) {
	if i == nil {
		return
	}
	i.cacheMisses.Add(ctx, 1)
}

// CacheError records a swallowed cache failure
func (i *Instruments) CacheError(ctx context.Context) {
	if i == nil {
		return
	}
	i.cacheErrors.Add(ctx, 1)
}

// LogsPurged records rows removed by one retention sweep
func (i *Instruments) LogsPurged(ctx context.Context, count int64) {
	if i == nil {
		return
	}
	i.logsPurged.Add(ctx, count)
}
