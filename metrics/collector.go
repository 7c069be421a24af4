package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-courier/delivery"
	queueredis "github.com/marcelsud/webhook-courier/queue/redis"
	"github.com/redis/go-redis/v9"
)

// PipelineCollector implements Collector over the Redis queue and the
// delivery log store
type PipelineCollector struct {
	client    *redis.Client
	logs      delivery.LogReader
	queueName string
}

// NewPipelineCollector creates a collector for one logical queue
func NewPipelineCollector(client *redis.Client, logs delivery.LogReader, queueName string) *PipelineCollector {
	return &PipelineCollector{
		client:    client,
		logs:      logs,
		queueName: queueName,
	}
}

// Collect gathers a full snapshot
func (c *PipelineCollector) Collect(ctx context.Context) (Snapshot, error) {
	depths, err := c.GetQueueDepths(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting queue depths: %w", err)
	}

	outcomes, err := c.GetOutcomeCounts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting outcome counts: %w", err)
	}

	return Snapshot{
		QueueDepths:   depths,
		OutcomeCounts: outcomes,
		Timestamp:     time.Now(),
	}, nil
}

// GetQueueDepths reads the length of each queue structure
func (c *PipelineCollector) GetQueueDepths(ctx context.Context) (QueueDepths, error) {
	ready, err := c.client.LLen(ctx, queueredis.ReadyKey(c.queueName)).Result()
	if err != nil && err != redis.Nil {
		return QueueDepths{}, fmt.Errorf("reading ready depth: %w", err)
	}

	delayed, err := c.client.ZCard(ctx, queueredis.DelayedKey(c.queueName)).Result()
	if err != nil && err != redis.Nil {
		return QueueDepths{}, fmt.Errorf("reading delayed depth: %w", err)
	}

	processing, err := c.client.LLen(ctx, queueredis.ProcessingKey(c.queueName)).Result()
	if err != nil && err != redis.Nil {
		return QueueDepths{}, fmt.Errorf("reading processing depth: %w", err)
	}

	return QueueDepths{
		Ready:      ready,
		Delayed:    delayed,
		Processing: processing,
	}, nil
}

// GetOutcomeCounts returns persisted attempt totals grouped by outcome
func (c *PipelineCollector) GetOutcomeCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := c.logs.CountByOutcome(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting outcomes: %w", err)
	}
	return counts, nil
}
