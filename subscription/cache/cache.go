package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-courier/metrics"
	"github.com/marcelsud/webhook-courier/subscription"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

/* Cache-aside layer fronting the durable store for subscription reads.
 * The cache is never authoritative: a hit short-circuits the store, any
 * kind of cache trouble (outage, corrupt entry) falls through to it.
 * Cache failures are swallowed and counted, never surfaced to callers.
 */

const keyPrefix = "subscription:"

func key(id string) string {
	return keyPrefix + id
}

// record is the JSON shape stored under subscription:<id>
type record struct {
	ID        string   `json:"id"`
	TargetURL string   `json:"target_url"`
	Secret    *string  `json:"secret"`
	Events    []string `json:"events"`
}

func toRecord(sub subscription.Subscription) record {
	events := sub.Events
	if events == nil {
		events = []string{}
	}
	return record{
		ID:        sub.ID,
		TargetURL: sub.TargetURL,
		Secret:    sub.Secret,
		Events:    events,
	}
}

func (r record) subscription() subscription.Subscription {
	return subscription.Subscription{
		ID:        r.ID,
		TargetURL: r.TargetURL,
		Secret:    r.Secret,
		Events:    r.Events,
	}
}

type Cache struct {
	client      *redis.Client
	store       subscription.Reader
	ttl         time.Duration // zero means no expiry
	logger      *zap.Logger
	instruments *metrics.Instruments
}

// New creates the subscription cache. Instruments may be nil.
func New(client *redis.Client, store subscription.Reader, ttl time.Duration, logger *zap.Logger, instruments *metrics.Instruments) *Cache {
	return &Cache{
		client:      client,
		store:       store,
		ttl:         ttl,
		logger:      logger,
		instruments: instruments,
	}
}

// Get resolves a subscription cache-first, falling through to the durable
// store on miss, corrupt entry or cache outage. A store hit warms the cache
// best-effort. Returns subscription.ErrNotFound when neither side has it.
func (c *Cache) Get(ctx context.Context, id string) (subscription.Subscription, error) {
	raw, err := c.client.Get(ctx, key(id)).Result()
	switch {
	case err == nil:
		var rec record
		if jsonErr := json.Unmarshal([]byte(raw), &rec); jsonErr == nil {
			c.instruments.CacheHit(ctx)
			return rec.subscription(), nil
		}
		// Corrupt entry: fall through to the store
		c.instruments.CacheError(ctx)
		c.logger.Warn("corrupt subscription cache entry",
			zap.String("subscription_id", id))
	case errors.Is(err, redis.Nil):
		c.instruments.CacheMiss(ctx)
	default:
		c.instruments.CacheError(ctx)
		c.logger.Warn("subscription cache read failed",
			zap.String("subscription_id", id), zap.Error(err))
	}

	sub, err := c.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			return subscription.Subscription{}, err
		}
		return subscription.Subscription{}, fmt.Errorf("loading subscription: %w", err)
	}

	c.Set(ctx, sub)
	return sub, nil
}

// Set write-through caches the full record. Errors are swallowed and counted.
func (c *Cache) Set(ctx context.Context, sub subscription.Subscription) {
	data, err := json.Marshal(toRecord(sub))
	if err != nil {
		c.instruments.CacheError(ctx)
		c.logger.Warn("marshaling subscription cache entry",
			zap.String("subscription_id", sub.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key(sub.ID), data, c.ttl).Err(); err != nil {
		c.instruments.CacheError(ctx)
		c.logger.Warn("subscription cache write failed",
			zap.String("subscription_id", sub.ID), zap.Error(err))
	}
}

// Invalidate drops the cache entry. Errors are swallowed and counted.
func (c *Cache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.instruments.CacheError(ctx)
		c.logger.Warn("subscription cache invalidation failed",
			zap.String("subscription_id", id), zap.Error(err))
	}
}
