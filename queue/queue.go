package queue

import (
	"context"
	"time"

	"github.com/marcelsud/webhook-courier/delivery"
)

// Deliveries is the logical queue name every delivery job travels through
const Deliveries = "deliveries"

/* The job store contract the core depends on: a durable FIFO ready queue
 * plus a delayed schedule, at-least-once. Jobs cross the boundary as typed
 * records serialized to JSON; consumers select their handler by queue name.
 */

// Producer enqueues jobs for immediate or delayed delivery
type Producer interface {
	/* Enqueue makes the job visible to consumers immediately.
	 * Returns the job id once the job is durably queued.
	 */
	Enqueue(ctx context.Context, queueName string, job delivery.Job) (string, error)
	/* EnqueueIn makes the job dequeuable after delay elapses.
	 * The delay is at-least: promotion may run slightly late, never early
	 * by more than the scheduler granularity.
	 */
	EnqueueIn(ctx context.Context, delay time.Duration, queueName string, job delivery.Job) (string, error)
}

// Consumer dequeues jobs with exclusive processing rights
type Consumer interface {
	/* Dequeue blocks until a job is ready or the context is cancelled.
	 * The caller owns the job until Ack; if it crashes, the job returns to
	 * the ready queue after the visibility timeout.
	 */
	Dequeue(ctx context.Context, queueName string) (delivery.Job, error)
	Ack(ctx context.Context, queueName string, job delivery.Job) error
}

type Queue interface {
	Producer
	Consumer
	Close(ctx context.Context) error
}
