package chi

import (
	"encoding/json"
	"net/http"
)

/* Machine-readable error kinds surfaced by the API.
 * Clients branch on kind, not on message text.
 */
const (
	KindSubscriptionNotFound = "SubscriptionNotFound"
	KindWebhookNotFound      = "WebhookNotFound"
	KindInvalidPayload       = "InvalidPayload"
	KindInvalidTargetURL     = "InvalidTargetURL"
	KindPayloadTooLarge      = "PayloadTooLarge"
	KindJobStoreUnavailable  = "JobStoreUnavailable"
	KindStoreUnavailable     = "StoreUnavailable"
)

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Kind: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
