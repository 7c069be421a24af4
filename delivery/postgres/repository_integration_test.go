//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-courier/delivery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRow(webhookID, subscriptionID string, attempt int, outcome delivery.Outcome, at time.Time) delivery.Log {
	status := 500
	detail := "HTTP 500"
	row := delivery.Log{
		ID:             uuid.New().String(),
		WebhookID:      webhookID,
		SubscriptionID: subscriptionID,
		TargetURL:      "https://example.com/hooks",
		Timestamp:      at,
		AttemptNumber:  attempt,
		Outcome:        outcome,
		StatusCode:     &status,
		Error:          &detail,
	}
	if outcome == delivery.Success {
		status = 200
		row.Error = nil
	}
	return row
}

func TestRepository_Logs_Integration(t *testing.T) {
	ctx := context.Background()
	container, cleanup := SetupPostgresContainer(t, ctx)
	defer cleanup()

	repo := &Repository{DB: container.DB}
	require.NoError(t, repo.CreateTable(ctx))

	webhookID := uuid.New().String()
	subscriptionID := uuid.New().String()
	now := time.Now().UTC()

	rows := []delivery.Log{
		newRow(webhookID, subscriptionID, 1, delivery.FailedAttempt, now.Add(-2*time.Minute)),
		newRow(webhookID, subscriptionID, 2, delivery.FailedAttempt, now.Add(-time.Minute)),
		newRow(webhookID, subscriptionID, 3, delivery.Success, now),
	}
	for _, row := range rows {
		require.NoError(t, repo.Append(ctx, row))
	}

	t.Run("list by webhook id returns most recent first", func(t *testing.T) {
		logs, err := repo.ListByWebhookID(ctx, webhookID, 20)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, 3, logs[0].AttemptNumber)
		assert.Equal(t, delivery.Success, logs[0].Outcome)
		assert.Equal(t, 1, logs[2].AttemptNumber)
	})

	t.Run("count by webhook id", func(t *testing.T) {
		count, err := repo.CountByWebhookID(ctx, webhookID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("list by subscription id", func(t *testing.T) {
		logs, err := repo.ListBySubscriptionID(ctx, subscriptionID, 2)
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("count by outcome", func(t *testing.T) {
		counts, err := repo.CountByOutcome(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts["Failed Attempt"])
		assert.Equal(t, int64(1), counts["Success"])
	})

	t.Run("purge removes only rows past the horizon", func(t *testing.T) {
		oldWebhook := uuid.New().String()
		old := newRow(oldWebhook, subscriptionID, 1, delivery.Failure, now.Add(-80*time.Hour))
		require.NoError(t, repo.Append(ctx, old))

		deleted, err := repo.PurgeOlderThan(ctx, now.Add(-72*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		// Rows younger than the cutoff survive
		count, err := repo.CountByWebhookID(ctx, webhookID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		gone, err := repo.CountByWebhookID(ctx, oldWebhook)
		require.NoError(t, err)
		assert.Zero(t, gone)
	})
}
