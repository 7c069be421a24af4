package retention_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/webhook-courier/delivery/mocks"
	"github.com/marcelsud/webhook-courier/retention"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPurgeOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the retention horizon as cutoff", func(t *testing.T) {
		logs := mocks.NewLogRepository(t)
		logs.On("PurgeOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().UTC().Add(-72 * time.Hour)
			diff := cutoff.Sub(expected)
			return diff > -time.Minute && diff < time.Minute
		})).Return(int64(7), nil)

		sweeper := retention.New(logs, 72*time.Hour, time.Hour, zap.NewNop(), nil)

		deleted, err := sweeper.PurgeOnce(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(7), deleted)
		logs.AssertExpectations(t)
	})

	t.Run("propagates purge failures to the scheduler", func(t *testing.T) {
		logs := mocks.NewLogRepository(t)
		logs.On("PurgeOlderThan", ctx, mock.AnythingOfType("time.Time")).
			Return(int64(0), assert.AnError)

		sweeper := retention.New(logs, 72*time.Hour, time.Hour, zap.NewNop(), nil)

		_, err := sweeper.PurgeOnce(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestStart(t *testing.T) {
	t.Run("runs a pass per tick until cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		calls := make(chan struct{}, 10)
		logs := mocks.NewLogRepository(t)
		logs.On("PurgeOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) { calls <- struct{}{} }).
			Return(int64(0), nil)

		sweeper := retention.New(logs, 72*time.Hour, 20*time.Millisecond, zap.NewNop(), nil)

		done := make(chan struct{})
		go func() {
			sweeper.Start(ctx)
			close(done)
		}()

		// The immediate pass plus at least one tick
		for i := 0; i < 2; i++ {
			select {
			case <-calls:
			case <-time.After(2 * time.Second):
				t.Fatal("sweeper never ran")
			}
		}

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("sweeper did not stop")
		}
	})
}
