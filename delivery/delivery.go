package delivery

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

/* Job is the in-flight delivery unit carried across the queue boundary.
 * It is serialized as JSON and never persisted in the durable store.
 */
type Job struct {
	// ID identifies one queue entry; retries get a fresh one
	ID             string          `json:"id"`
	SubscriptionID string          `json:"subscription_id"`
	Payload        json.RawMessage `json:"payload"`
	EventType      string          `json:"event_type,omitempty"`
	Signature      string          `json:"signature,omitempty"`
	// WebhookID ties every attempt of one ingested event together
	WebhookID  string    `json:"webhook_id"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewJob creates the first-attempt job for a freshly ingested event
func NewJob(subscriptionID string, payload json.RawMessage, eventType, signature string) Job {
	return Job{
		ID:             uuid.New().String(),
		SubscriptionID: subscriptionID,
		Payload:        payload,
		EventType:      eventType,
		Signature:      signature,
		WebhookID:      uuid.New().String(),
		Attempt:        1,
		EnqueuedAt:     time.Now().UTC(),
	}
}

// Next returns the retry job for the following attempt
func (j Job) Next() Job {
	next := j
	next.ID = uuid.New().String()
	next.Attempt = j.Attempt + 1
	next.EnqueuedAt = time.Now().UTC()
	return next
}

/* Log is one row per executed attempt
 * StatusCode and Error are nullable: network failures have no status code,
 * successful attempts have no error
 */
type Log struct {
	ID             string
	WebhookID      string
	SubscriptionID string
	// TargetURL snapshots the URL actually contacted for this attempt
	TargetURL     string
	Timestamp     time.Time
	AttemptNumber int
	Outcome       Outcome
	StatusCode    *int
	Error         *string
}
