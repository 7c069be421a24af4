package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/webhook-courier/delivery"
	"github.com/marcelsud/webhook-courier/queue"
	"github.com/marcelsud/webhook-courier/subscription"
)

// ingestResponse acknowledges an accepted webhook
type ingestResponse struct {
	WebhookID string `json:"webhook_id"`
}

/* postIngest handles POST /ingest/{subscription_id}
 * The 202 reply is only written after the job is durably enqueued; no
 * outbound delivery happens on this path.
 */
func postIngest(deps Deps) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subscriptionID := chi.URLParam(r, "subscription_id")

		// Cache-first lookup; an unknown id is a 404 before any body work
		_, err := deps.Resolver.Get(r.Context(), subscriptionID)
		if err != nil {
			if errors.Is(err, subscription.ErrNotFound) {
				writeError(w, http.StatusNotFound, KindSubscriptionNotFound,
					"subscription not found: "+subscriptionID)
				return
			}
			writeError(w, http.StatusServiceUnavailable, KindStoreUnavailable,
				"subscription store unavailable")
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, deps.MaxBodyBytes))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, http.StatusRequestEntityTooLarge, KindPayloadTooLarge,
					"payload exceeds the configured limit")
				return
			}
			writeError(w, http.StatusBadRequest, KindInvalidPayload,
				"failed to read request body")
			return
		}
		defer r.Body.Close()

		payload, err := canonicalJSON(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidPayload,
				"request body must be valid JSON")
			return
		}

		// X-Event-Type and X-Signature are opaque; both are forwarded
		// verbatim on every outbound attempt
		job := delivery.NewJob(
			subscriptionID,
			payload,
			r.Header.Get("X-Event-Type"),
			r.Header.Get("X-Signature"),
		)

		if _, err := deps.Producer.Enqueue(r.Context(), queue.Deliveries, job); err != nil {
			writeError(w, http.StatusServiceUnavailable, KindJobStoreUnavailable,
				"delivery queue unavailable")
			return
		}

		deps.Instruments.IngestAccepted(r.Context())
		writeJSON(w, http.StatusAccepted, ingestResponse{WebhookID: job.WebhookID})
	})
}

// canonicalJSON validates the body and re-serializes it without
// insignificant whitespace
func canonicalJSON(body []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
