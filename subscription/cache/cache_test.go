package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/webhook-courier/subscription"
	"github.com/marcelsud/webhook-courier/subscription/cache"
	"github.com/marcelsud/webhook-courier/subscription/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

/* These tests exercise the cache with an unreachable Redis: every cache
 * operation fails, and the layer must behave as if the cache simply did
 * not exist. The hit/warm paths run against a real Redis in the
 * integration suite.
 */

// deadClient returns a client whose every command fails fast
func deadClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestGetWithCacheOutage(t *testing.T) {
	ctx := context.Background()
	id := "6f2c1a90-95b9-4a6e-9a0b-2f4dfc17a111"

	t.Run("falls through to the store", func(t *testing.T) {
		store := mocks.NewRepository(t)
		store.On("Get", ctx, id).Return(subscription.Subscription{
			ID:        id,
			TargetURL: "https://example.com/hooks",
		}, nil)

		c := cache.New(deadClient(), store, 0, zap.NewNop(), nil)

		sub, err := c.Get(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/hooks", sub.TargetURL)
		store.AssertExpectations(t)
	})

	t.Run("store miss surfaces ErrNotFound", func(t *testing.T) {
		store := mocks.NewRepository(t)
		store.On("Get", ctx, id).Return(subscription.Subscription{}, subscription.ErrNotFound)

		c := cache.New(deadClient(), store, 0, zap.NewNop(), nil)

		_, err := c.Get(ctx, id)

		assert.ErrorIs(t, err, subscription.ErrNotFound)
	})

	t.Run("set and invalidate never error", func(t *testing.T) {
		store := mocks.NewRepository(t)
		c := cache.New(deadClient(), store, 0, zap.NewNop(), nil)

		// Both are void by contract; the assertion is that nothing panics
		// and no error escapes to the caller
		c.Set(ctx, subscription.Subscription{ID: id, TargetURL: "https://example.com"})
		c.Invalidate(ctx, id)
	})
}
