package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/webhook-courier/delivery"
	deliverymocks "github.com/marcelsud/webhook-courier/delivery/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testWebhookID = "0d4fbc2e-9f64-4a27-9ab0-222222222222"

func statusDeps(logs delivery.LogReader) Deps {
	return Deps{
		Logs:         logs,
		MaxBodyBytes: 1 << 20,
	}
}

func TestGetWebhookStatus(t *testing.T) {
	t.Run("summarizes the attempt history", func(t *testing.T) {
		now := time.Now().UTC()
		okStatus := 200
		failStatus := 500
		failDetail := "HTTP 500"

		logs := deliverymocks.NewLogRepository(t)
		logs.On("CountByWebhookID", mock.Anything, testWebhookID).Return(int64(2), nil)
		logs.On("ListByWebhookID", mock.Anything, testWebhookID, 20).Return([]delivery.Log{
			{
				WebhookID:      testWebhookID,
				SubscriptionID: testSubID,
				TargetURL:      "https://example.com",
				Timestamp:      now,
				AttemptNumber:  2,
				Outcome:        delivery.Success,
				StatusCode:     &okStatus,
			},
			{
				WebhookID:      testWebhookID,
				SubscriptionID: testSubID,
				TargetURL:      "https://example.com",
				Timestamp:      now.Add(-time.Minute),
				AttemptNumber:  1,
				Outcome:        delivery.FailedAttempt,
				StatusCode:     &failStatus,
				Error:          &failDetail,
			},
		}, nil)

		h := Handlers(statusDeps(logs))

		req := httptest.NewRequest(http.MethodGet, "/status/"+testWebhookID, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp statusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testWebhookID, resp.WebhookID)
		assert.Equal(t, testSubID, resp.SubscriptionID)
		assert.Equal(t, int64(2), resp.TotalAttempts)
		assert.Equal(t, "Success", resp.FinalOutcome)
		require.NotNil(t, resp.LastStatusCode)
		assert.Equal(t, 200, *resp.LastStatusCode)
		require.Len(t, resp.RecentAttempts, 2)
		assert.Equal(t, "Failed Attempt", resp.RecentAttempts[1].Outcome)
	})

	t.Run("no rows is a 404", func(t *testing.T) {
		logs := deliverymocks.NewLogRepository(t)
		logs.On("CountByWebhookID", mock.Anything, testWebhookID).Return(int64(0), nil)

		h := Handlers(statusDeps(logs))

		req := httptest.NewRequest(http.MethodGet, "/status/"+testWebhookID, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, KindWebhookNotFound, resp.Kind)
	})
}

func TestListSubscriptionAttempts(t *testing.T) {
	logs := deliverymocks.NewLogRepository(t)
	logs.On("ListBySubscriptionID", mock.Anything, testSubID, 5).Return([]delivery.Log{
		{WebhookID: testWebhookID, SubscriptionID: testSubID, AttemptNumber: 1, Outcome: delivery.Success},
	}, nil)

	h := Handlers(statusDeps(logs))

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+testSubID+"/attempts?limit=5", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []attemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Success", resp[0].Outcome)
}
