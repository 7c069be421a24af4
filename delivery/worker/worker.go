package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/marcelsud/webhook-courier/delivery"
	"github.com/marcelsud/webhook-courier/metrics"
	"github.com/marcelsud/webhook-courier/queue"
	"github.com/marcelsud/webhook-courier/subscription"
	"go.uber.org/zap"
)

/* Worker consumes delivery jobs and runs the attempt protocol:
 * resolve the subscription cache-first, POST the payload to the current
 * target URL, classify the outcome, append exactly one log row, and
 * schedule the next attempt on transient failure.
 *
 * Infrastructure failures never ack: the job stays owned until the
 * visibility timeout redelivers it, so duplicates are possible but loss
 * is not.
 */

const infraRetries = 3 // bounded retries against JS/DS before giving the job back

// Options wires the worker's dependencies and tunables
type Options struct {
	Queue         queue.Queue
	Subscriptions subscription.Getter
	Logs          delivery.LogWriter
	// HTTPClient must carry the per-attempt timeout; when nil one is built
	// from Timeout with a pooled transport
	HTTPClient  *http.Client
	Timeout     time.Duration
	MaxAttempts int
	// Schedule[N-1] is the delay between attempt N and attempt N+1
	Schedule    []time.Duration
	Concurrency int
	Logger      *zap.Logger
	Instruments *metrics.Instruments
}

type Worker struct {
	queue       queue.Queue
	subs        subscription.Getter
	logs        delivery.LogWriter
	client      *http.Client
	maxAttempts int
	schedule    []time.Duration
	concurrency int
	logger      *zap.Logger
	instruments *metrics.Instruments
}

// New validates the options and creates a worker
func New(opts Options) (*Worker, error) {
	if opts.Queue == nil || opts.Subscriptions == nil || opts.Logs == nil {
		return nil, fmt.Errorf("queue, subscriptions and logs are required")
	}
	if opts.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", opts.MaxAttempts)
	}
	if len(opts.Schedule) < opts.MaxAttempts-1 {
		return nil, fmt.Errorf("backoff schedule needs at least %d entries, got %d",
			opts.MaxAttempts-1, len(opts.Schedule))
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Worker{
		queue:       opts.Queue,
		subs:        opts.Subscriptions,
		logs:        opts.Logs,
		client:      client,
		maxAttempts: opts.MaxAttempts,
		schedule:    opts.Schedule,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		instruments: opts.Instruments,
	}, nil
}

// Run consumes jobs until the context is cancelled, then drains the pool.
// In-flight attempts run on a context that is not cancelled with ctx, so
// they finish before Run returns.
// A non-nil error means the job store stayed unreachable through bounded
// retries; the supervisor is expected to restart the process.
func (w *Worker) Run(ctx context.Context) error {
	pool := pond.NewPool(w.concurrency)
	defer pool.StopAndWait()

	attemptCtx := context.WithoutCancel(ctx)
	for {
		job, err := w.dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("dequeuing delivery job: %w", err)
		}
		pool.Submit(func() {
			w.Process(attemptCtx, job)
		})
	}
}

func (w *Worker) dequeue(ctx context.Context) (delivery.Job, error) {
	var job delivery.Job
	operation := func() error {
		var err error
		job, err = w.queue.Dequeue(ctx, queue.Deliveries)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), infraRetries), ctx))
	return job, err
}

// Process runs one attempt for one job. Exported so tests can drive jobs
// without the pool.
func (w *Worker) Process(ctx context.Context, job delivery.Job) {
	sub, err := w.subs.Get(ctx, job.SubscriptionID)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			// Documented degradation under concurrent deletion:
			// drop the job with a warning and no log row
			w.logger.Warn("subscription vanished, dropping job",
				zap.String("webhook_id", job.WebhookID),
				zap.String("subscription_id", job.SubscriptionID),
				zap.Int("attempt", job.Attempt),
			)
			w.ack(ctx, job)
			return
		}
		// Store unavailable: leave the job to the visibility timeout
		w.logger.Error("subscription lookup failed",
			zap.String("webhook_id", job.WebhookID),
			zap.String("subscription_id", job.SubscriptionID),
			zap.Error(err),
		)
		return
	}

	statusCode, errDetail := w.attempt(ctx, sub.TargetURL, job)

	transient := errDetail != nil
	var outcome delivery.Outcome
	switch {
	case !transient:
		outcome = delivery.Success
	case job.Attempt < w.maxAttempts:
		outcome = delivery.FailedAttempt
	default:
		outcome = delivery.Failure
	}

	row := delivery.Log{
		ID:             uuid.New().String(),
		WebhookID:      job.WebhookID,
		SubscriptionID: job.SubscriptionID,
		TargetURL:      sub.TargetURL,
		Timestamp:      time.Now().UTC(),
		AttemptNumber:  job.Attempt,
		Outcome:        outcome,
		StatusCode:     statusCode,
		Error:          errDetail,
	}

	if err := w.appendLog(ctx, row); err != nil {
		// No log row committed: do not ack, do not schedule the retry.
		// Redelivery will rerun this attempt.
		w.logger.Error("appending delivery log failed",
			zap.String("webhook_id", job.WebhookID),
			zap.Int("attempt", job.Attempt),
			zap.Error(err),
		)
		return
	}

	w.logAttempt(row)
	w.instruments.Delivery(ctx, outcome.String())

	if outcome == delivery.FailedAttempt {
		delay := w.schedule[job.Attempt-1]
		if err := w.enqueueRetry(ctx, delay, job.Next()); err != nil {
			// The retry is not queued: keep the current job unacked so
			// redelivery re-runs it (duplicate log rows are acceptable)
			w.logger.Error("scheduling retry failed",
				zap.String("webhook_id", job.WebhookID),
				zap.Int("attempt", job.Attempt),
				zap.Error(err),
			)
			return
		}
	}

	w.ack(ctx, job)
}

// attempt performs the outbound POST and classifies the response.
// A nil error detail means success; otherwise the attempt is transient.
func (w *Worker) attempt(ctx context.Context, targetURL string, job delivery.Job) (*int, *string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(job.Payload))
	if err != nil {
		detail := err.Error()
		return nil, &detail
	}
	req.Header.Set("Content-Type", "application/json")
	if job.EventType != "" {
		req.Header.Set("X-Event-Type", job.EventType)
	}
	if job.Signature != "" {
		req.Header.Set("X-Signature", job.Signature)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		detail := err.Error()
		return nil, &detail
	}
	defer resp.Body.Close()
	// The response body is never inspected; drain it so the connection
	// returns to the pool
	io.Copy(io.Discard, resp.Body)

	code := resp.StatusCode
	if code >= 200 && code <= 299 {
		return &code, nil
	}
	detail := fmt.Sprintf("HTTP %d", code)
	return &code, &detail
}

func (w *Worker) appendLog(ctx context.Context, row delivery.Log) error {
	operation := func() error {
		err := w.logs.Append(ctx, row)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), infraRetries), ctx))
}

func (w *Worker) enqueueRetry(ctx context.Context, delay time.Duration, next delivery.Job) error {
	operation := func() error {
		_, err := w.queue.EnqueueIn(ctx, delay, queue.Deliveries, next)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), infraRetries), ctx))
}

func (w *Worker) ack(ctx context.Context, job delivery.Job) {
	if err := w.queue.Ack(ctx, queue.Deliveries, job); err != nil {
		w.logger.Warn("acking job failed",
			zap.String("job_id", job.ID),
			zap.String("webhook_id", job.WebhookID),
			zap.Error(err),
		)
	}
}

// logAttempt emits the operator log line required for every executed
// attempt. Secrets and payload bodies are never logged.
func (w *Worker) logAttempt(row delivery.Log) {
	fields := []zap.Field{
		zap.String("webhook_id", row.WebhookID),
		zap.String("subscription_id", row.SubscriptionID),
		zap.Int("attempt_number", row.AttemptNumber),
		zap.String("outcome", row.Outcome.String()),
	}
	if row.StatusCode != nil {
		fields = append(fields, zap.Int("status_code", *row.StatusCode))
	}
	if row.Error != nil {
		fields = append(fields, zap.String("error", *row.Error))
	}

	if row.Outcome == delivery.Success {
		w.logger.Info("webhook delivered", fields...)
		return
	}
	w.logger.Warn("webhook attempt failed", fields...)
}
