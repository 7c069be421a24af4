package metrics

import (
	"context"
	"time"
)

// Snapshot represents the current state of the delivery pipeline.
type Snapshot struct {
	// QueueDepths counts jobs in each queue state
	QueueDepths QueueDepths `json:"queue_depths"`

	// OutcomeCounts maps persisted outcome name to total attempt rows
	OutcomeCounts map[string]int64 `json:"outcome_counts"`

	// Timestamp when the snapshot was collected
	Timestamp time.Time `json:"timestamp"`
}

// QueueDepths counts jobs that are ready, waiting on a backoff delay,
// or currently held by a worker.
type QueueDepths struct {
	Ready      int64 `json:"ready"`
	Delayed    int64 `json:"delayed"`
	Processing int64 `json:"processing"`
}

// Collector abstracts where pipeline state is observed from
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
	GetQueueDepths(ctx context.Context) (QueueDepths, error)
	GetOutcomeCounts(ctx context.Context) (map[string]int64, error)
}
