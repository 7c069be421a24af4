package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/webhook-courier/delivery"
)

const recentAttemptsLimit = 20

// attemptResponse represents one delivery attempt in the API
type attemptResponse struct {
	AttemptNumber int       `json:"attempt_number"`
	Outcome       string    `json:"outcome"`
	Timestamp     time.Time `json:"timestamp"`
	TargetURL     string    `json:"target_url"`
	StatusCode    *int      `json:"status_code"`
	Error         *string   `json:"error"`
}

// statusResponse summarizes the delivery history of one webhook
type statusResponse struct {
	WebhookID      string            `json:"webhook_id"`
	SubscriptionID string            `json:"subscription_id"`
	TotalAttempts  int64             `json:"total_attempts"`
	FinalOutcome   string            `json:"final_outcome"`
	LastAttemptAt  time.Time         `json:"last_attempt_at"`
	LastStatusCode *int              `json:"last_status_code"`
	Error          *string           `json:"error"`
	RecentAttempts []attemptResponse `json:"recent_attempts"`
}

func toAttemptResponse(log delivery.Log) attemptResponse {
	return attemptResponse{
		AttemptNumber: log.AttemptNumber,
		Outcome:       log.Outcome.String(),
		Timestamp:     log.Timestamp,
		TargetURL:     log.TargetURL,
		StatusCode:    log.StatusCode,
		Error:         log.Error,
	}
}

// getWebhookStatus handles GET /status/{webhook_id}
func getWebhookStatus(logs delivery.LogReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookID := chi.URLParam(r, "webhook_id")

		total, err := logs.CountByWebhookID(r.Context(), webhookID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}
		if total == 0 {
			writeError(w, http.StatusNotFound, KindWebhookNotFound,
				"no delivery logs for webhook: "+webhookID)
			return
		}

		rows, err := logs.ListByWebhookID(r.Context(), webhookID, recentAttemptsLimit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}

		recent := make([]attemptResponse, 0, len(rows))
		for _, row := range rows {
			recent = append(recent, toAttemptResponse(row))
		}

		// Rows arrive most-recent-first
		last := rows[0]
		writeJSON(w, http.StatusOK, statusResponse{
			WebhookID:      webhookID,
			SubscriptionID: last.SubscriptionID,
			TotalAttempts:  total,
			FinalOutcome:   last.Outcome.String(),
			LastAttemptAt:  last.Timestamp,
			LastStatusCode: last.StatusCode,
			Error:          last.Error,
			RecentAttempts: recent,
		})
	})
}

// listSubscriptionAttempts handles GET /subscriptions/{id}/attempts
func listSubscriptionAttempts(logs delivery.LogReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		limit := queryInt(r, "limit", recentAttemptsLimit)

		rows, err := logs.ListBySubscriptionID(r.Context(), id, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}

		responses := make([]attemptResponse, 0, len(rows))
		for _, row := range rows {
			responses = append(responses, toAttemptResponse(row))
		}
		writeJSON(w, http.StatusOK, responses)
	})
}
