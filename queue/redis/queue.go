package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/marcelsud/webhook-courier/delivery"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

/* Redis implementation of the job store contract
 * Ready queue:      list  courier:queue:{name}           (RPUSH / BLMOVE)
 * Delayed schedule: zset  courier:queue:{name}:delayed   scored by ready-at
 * In-flight jobs:   list  courier:queue:{name}:processing
 * Visibility:       string courier:lease:{job_id} with the visibility TTL
 *
 * A consumer moves a job ready -> processing and takes a lease. Ack removes
 * both. If the consumer crashes the lease expires and the scheduler moves
 * the job back to ready: at-least-once.
 */

const (
	queuePrefix  = "courier:queue"
	leasePrefix  = "courier:lease"
	blockTimeout = 1 * time.Second // shorter block for responsiveness to cancellation
	promoteBatch = 100
)

type Queue struct {
	client     *redis.Client
	visibility time.Duration
	logger     *zap.Logger

	// raw bytes of in-flight jobs by job id, so Ack removes the exact
	// list entry that was dequeued
	inflight sync.Map
}

// NewQueue creates a Redis-backed queue. The visibility timeout should
// exceed the per-attempt HTTP timeout.
func NewQueue(client *redis.Client, visibility time.Duration, logger *zap.Logger) *Queue {
	return &Queue{
		client:     client,
		visibility: visibility,
		logger:     logger,
	}
}

// Enqueue appends the job to the ready queue
func (q *Queue) Enqueue(ctx context.Context, queueName string, job delivery.Job) (string, error) {
	raw, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshaling job: %w", err)
	}
	if err := q.client.RPush(ctx, ReadyKey(queueName), raw).Err(); err != nil {
		return "", fmt.Errorf("enqueuing job: %w", err)
	}
	return job.ID, nil
}

// EnqueueIn schedules the job to become ready after delay
func (q *Queue) EnqueueIn(ctx context.Context, delay time.Duration, queueName string, job delivery.Job) (string, error) {
	if delay <= 0 {
		return q.Enqueue(ctx, queueName, job)
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshaling job: %w", err)
	}
	readyAt := time.Now().Add(delay).UnixMilli()
	err = q.client.ZAdd(ctx, DelayedKey(queueName), redis.Z{
		Score:  float64(readyAt),
		Member: raw,
	}).Err()
	if err != nil {
		return "", fmt.Errorf("scheduling delayed job: %w", err)
	}
	return job.ID, nil
}

// Dequeue blocks until a ready job is available or the context is cancelled
func (q *Queue) Dequeue(ctx context.Context, queueName string) (delivery.Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return delivery.Job{}, err
		}

		raw, err := q.client.BLMove(ctx, ReadyKey(queueName), ProcessingKey(queueName),
			"LEFT", "RIGHT", blockTimeout).Result()
		if err == redis.Nil {
			// Nothing ready within the block window
			continue
		}
		if err != nil {
			return delivery.Job{}, fmt.Errorf("dequeuing job: %w", err)
		}

		var job delivery.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			// Poison entry: drop it rather than wedge the queue
			q.client.LRem(ctx, ProcessingKey(queueName), 1, raw)
			q.logger.Warn("dropping undecodable job", zap.Error(err))
			continue
		}

		if err := q.client.Set(ctx, LeaseKey(job.ID), "1", q.visibility).Err(); err != nil {
			q.logger.Warn("setting job lease", zap.String("job_id", job.ID), zap.Error(err))
		}
		q.inflight.Store(job.ID, raw)
		return job, nil
	}
}

// Ack releases a completed job: it leaves the processing list and its
// lease is deleted
func (q *Queue) Ack(ctx context.Context, queueName string, job delivery.Job) error {
	raw := q.rawFor(job)
	if err := q.client.LRem(ctx, ProcessingKey(queueName), 1, raw).Err(); err != nil {
		return fmt.Errorf("removing job from processing: %w", err)
	}
	if err := q.client.Del(ctx, LeaseKey(job.ID)).Err(); err != nil {
		return fmt.Errorf("deleting job lease: %w", err)
	}
	q.inflight.Delete(job.ID)
	return nil
}

func (q *Queue) rawFor(job delivery.Job) string {
	if raw, ok := q.inflight.Load(job.ID); ok {
		return raw.(string)
	}
	// Fallback for jobs dequeued by another instance; field order is
	// deterministic so the bytes match
	raw, _ := json.Marshal(job)
	return string(raw)
}

/* RunScheduler promotes due delayed jobs into the ready queue and requeues
 * in-flight jobs whose lease expired. One scheduler per queue is enough;
 * running several is safe because ZRem arbitrates ownership.
 */
func (q *Queue) RunScheduler(ctx context.Context, queueName string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := q.promoteDue(ctx, queueName); err != nil && ctx.Err() == nil {
				q.logger.Error("promoting delayed jobs", zap.Error(err))
			}
			if err := q.reclaimExpired(ctx, queueName); err != nil && ctx.Err() == nil {
				q.logger.Error("reclaiming expired jobs", zap.Error(err))
			}
		}
	}
}

func (q *Queue) promoteDue(ctx context.Context, queueName string) error {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	due, err := q.client.ZRangeByScore(ctx, DelayedKey(queueName), &redis.ZRangeBy{
		Min:   "-inf",
		Max:   now,
		Count: promoteBatch,
	}).Result()
	if err != nil {
		return fmt.Errorf("reading due jobs: %w", err)
	}

	for _, raw := range due {
		// ZRem returning 1 means this scheduler won the entry
		removed, err := q.client.ZRem(ctx, DelayedKey(queueName), raw).Result()
		if err != nil {
			return fmt.Errorf("claiming due job: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.RPush(ctx, ReadyKey(queueName), raw).Err(); err != nil {
			return fmt.Errorf("promoting due job: %w", err)
		}
	}
	return nil
}

func (q *Queue) reclaimExpired(ctx context.Context, queueName string) error {
	entries, err := q.client.LRange(ctx, ProcessingKey(queueName), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("reading processing list: %w", err)
	}

	for _, raw := range entries {
		var job delivery.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			q.client.LRem(ctx, ProcessingKey(queueName), 1, raw)
			q.logger.Warn("dropping undecodable in-flight job", zap.Error(err))
			continue
		}

		alive, err := q.client.Exists(ctx, LeaseKey(job.ID)).Result()
		if err != nil {
			return fmt.Errorf("checking job lease: %w", err)
		}
		if alive > 0 {
			continue
		}

		removed, err := q.client.LRem(ctx, ProcessingKey(queueName), 1, raw).Result()
		if err != nil {
			return fmt.Errorf("removing expired job: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.RPush(ctx, ReadyKey(queueName), raw).Err(); err != nil {
			return fmt.Errorf("requeuing expired job: %w", err)
		}
		q.logger.Warn("requeued job after lease expiry",
			zap.String("job_id", job.ID),
			zap.String("webhook_id", job.WebhookID),
			zap.Int("attempt", job.Attempt),
		)
	}
	return nil
}

// Close closes the Redis connection
func (q *Queue) Close(ctx context.Context) error {
	return q.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (q *Queue) GetClient() *redis.Client {
	return q.client
}

// Key helpers, exported for the metrics collector

func ReadyKey(queueName string) string {
	return fmt.Sprintf("%s:%s", queuePrefix, queueName)
}

func DelayedKey(queueName string) string {
	return fmt.Sprintf("%s:%s:delayed", queuePrefix, queueName)
}

func ProcessingKey(queueName string) string {
	return fmt.Sprintf("%s:%s:processing", queuePrefix, queueName)
}

func LeaseKey(jobID string) string {
	return fmt.Sprintf("%s:%s", leasePrefix, jobID)
}
