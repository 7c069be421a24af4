package delivery

import (
	"context"
	"time"
)

// LogWriter appends attempt rows to the durable store
type LogWriter interface {
	Append(ctx context.Context, log Log) error
}

// LogReader provides the read projections used by the status surface
// and the metrics collector
type LogReader interface {
	/* ListByWebhookID returns attempt rows most-recent-first */
	ListByWebhookID(ctx context.Context, webhookID string, limit int) ([]Log, error)
	CountByWebhookID(ctx context.Context, webhookID string) (int64, error)
	ListBySubscriptionID(ctx context.Context, subscriptionID string, limit int) ([]Log, error)
	CountByOutcome(ctx context.Context) (map[string]int64, error)
}

// Purger is the retention sweep contract
type Purger interface {
	/* PurgeOlderThan deletes rows with timestamp before cutoff in a single
	 * transaction and returns the number of rows deleted
	 */
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type LogRepository interface {
	LogWriter
	LogReader
	Purger
	Close(ctx context.Context) error
}
